package config

// Default paths for local state
const (
	// DefaultDatabasePath is the SQLite file holding the library, settings and challenge slots
	DefaultDatabasePath = "./readvoyage.db"

	// DefaultTasksDatabasePath is the SQLite file backing the background task queue
	DefaultTasksDatabasePath = "./readvoyage-tasks.db"

	// DefaultQuotaBytes mirrors the per-origin limit of browser local storage
	DefaultQuotaBytes = 5 * 1024 * 1024
)

// Storage backends accepted by STORAGE_BACKEND
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)
