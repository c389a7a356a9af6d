package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/readvoyage/internal/backup"
	"github.com/mrlokans/readvoyage/internal/covers"
	"github.com/mrlokans/readvoyage/internal/http"
	"github.com/mrlokans/readvoyage/internal/kvstore"
	"github.com/mrlokans/readvoyage/internal/library"
	"github.com/mrlokans/readvoyage/internal/search"
	"github.com/mrlokans/readvoyage/internal/tasks"
)

// =============================================================================
// Storage
// =============================================================================

var _ kvstore.Store = (*kvstore.SQLiteStore)(nil)
var _ kvstore.Store = (*kvstore.RedisStore)(nil)
var _ kvstore.Store = (*kvstore.MemoryStore)(nil)
var _ kvstore.Store = (*kvstore.QuotaStore)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ search.Searcher = (*search.Client)(nil)
var _ http.BookFinder = (*search.Gateway)(nil)

// =============================================================================
// Background Work
// =============================================================================

// Cover cache
var _ tasks.CoverFetcher = (*covers.Cache)(nil)
var _ tasks.CoverInvalidator = (*covers.Cache)(nil)

// Task queue
var _ tasks.Enqueuer = (*tasks.Client)(nil)

// Backups
var _ backup.Snapshotter = (*library.Repository)(nil)
var _ backup.Sink = (*backup.DirSink)(nil)
var _ backup.Sink = (*backup.MinioSink)(nil)
var _ tasks.BackupRunner = (*backup.Scheduler)(nil)
var _ http.BackupRunner = (*backup.Scheduler)(nil)
