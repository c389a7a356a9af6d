package kvstore

import (
	"fmt"
	"log"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/readvoyage/internal/config"
)

// Open builds the backend named by cfg.Storage.Backend and applies the
// configured quota. A SQLite file that cannot be opened falls back to memory
// so the process still starts; nothing written in that mode survives exit.
func Open(cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Storage.Backend {
	case config.BackendSQLite, "":
		store, err = NewSQLiteStore(cfg.Storage.Path, logger.Warn)
		if err != nil {
			log.Printf("Warning: SQLite store unavailable, falling back to memory: %v", err)
			store, err = NewMemoryStore(), nil
		}
	case config.BackendRedis:
		store = NewRedisStore(RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Storage.QuotaBytes > 0 {
		store = NewQuotaStore(store, cfg.Storage.QuotaBytes)
	}
	return store, nil
}
