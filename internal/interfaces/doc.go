// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage
//
//   - kvstore.Store: string slots keyed by name (internal/kvstore/kvstore.go).
//     Implemented by SQLiteStore, RedisStore, MemoryStore and the QuotaStore wrapper.
//
// ## Catalog search
//
//   - search.Searcher: raw OpenLibrary lookups (internal/search/gateway.go)
//   - http.BookFinder: cached lookups that report failures as messages
//     (internal/http/config.go), implemented by search.Gateway
//
// ## Background work
//
//   - tasks.CoverFetcher / tasks.CoverInvalidator: cover cache operations
//     used by the cache_cover queue and CoverSync (internal/tasks)
//   - tasks.Enqueuer: adds tasks to the queue, implemented by tasks.Client
//   - backup.Snapshotter: source of export snapshots, implemented by
//     library.Repository
//   - backup.Sink: snapshot destination, implemented by DirSink and MinioSink
//
// # Events
//
// library.Repository publishes on an events.Bus after every committed change:
//
//	booksUpdated     events.BooksChange (add, update, delete, clear)
//	settingsUpdated  events.SettingsChange
//	dataImported     events.Imported
//
// Subscribers: challenge.Tracker, tasks.CoverSync and the SSE stream in
// internal/http/events.go.
//
// # Compile-time checks
//
// checks.go asserts that each concrete type satisfies its interface.
package interfaces
