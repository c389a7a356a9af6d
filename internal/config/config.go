package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Storage
		Redis
		Search
		Covers
		Tasks
		Backup
		Challenge
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Storage struct {
		Backend    string // sqlite, redis or memory
		Path       string
		QuotaBytes int // 0 disables the quota
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		Prefix   string // Namespace prepended to every slot key
	}
	Search struct {
		BaseURL   string
		Limit     int
		CacheSize int
		Timeout   time.Duration
		RateLimit time.Duration // Minimum delay between OpenLibrary requests
	}
	Covers struct {
		Dir string
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
		Keep     int // Newest snapshots kept in Dir, 0 keeps all

		S3Endpoint  string // Empty disables the bucket sink
		S3Bucket    string
		S3AccessKey string
		S3SecretKey string
		S3UseSSL    bool
	}
	Challenge struct {
		AutoTrack bool // Keep booksRead equal to the completed count
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("storage_backend", BackendSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("storage_quota_bytes", DefaultQuotaBytes)

	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "readvoyage:")

	v.SetDefault("search_base_url", "https://openlibrary.org")
	v.SetDefault("search_limit", 20)
	v.SetDefault("search_cache_size", 128)
	v.SetDefault("search_timeout", "10s")
	v.SetDefault("search_rate_limit", "1s")

	v.SetDefault("covers_dir", "./covers")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Backup defaults
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_keep", 7)
	v.SetDefault("backup_s3_endpoint", "")
	v.SetDefault("backup_s3_bucket", "readvoyage-backups")
	v.SetDefault("backup_s3_use_ssl", true)

	v.SetDefault("challenge_auto_track", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Storage: Storage{
			Backend:    v.GetString("STORAGE_BACKEND"),
			Path:       v.GetString("DATABASE_PATH"),
			QuotaBytes: v.GetInt("STORAGE_QUOTA_BYTES"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		Search: Search{
			BaseURL:   v.GetString("SEARCH_BASE_URL"),
			Limit:     v.GetInt("SEARCH_LIMIT"),
			CacheSize: v.GetInt("SEARCH_CACHE_SIZE"),
			Timeout:   v.GetDuration("SEARCH_TIMEOUT"),
			RateLimit: v.GetDuration("SEARCH_RATE_LIMIT"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Backup: Backup{
			Enabled:     v.GetBool("BACKUP_ENABLED"),
			Schedule:    v.GetString("BACKUP_SCHEDULE"),
			Dir:         v.GetString("BACKUP_DIR"),
			Keep:        v.GetInt("BACKUP_KEEP"),
			S3Endpoint:  v.GetString("BACKUP_S3_ENDPOINT"),
			S3Bucket:    v.GetString("BACKUP_S3_BUCKET"),
			S3AccessKey: v.GetString("BACKUP_S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("BACKUP_S3_SECRET_KEY"),
			S3UseSSL:    v.GetBool("BACKUP_S3_USE_SSL"),
		},
		Challenge: Challenge{
			AutoTrack: v.GetBool("CHALLENGE_AUTO_TRACK"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
