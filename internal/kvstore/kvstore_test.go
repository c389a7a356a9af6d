package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/readvoyage/internal/config"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(RedisOptions{Addr: mr.Addr(), Prefix: "rv:"})
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func backends(t *testing.T) map[string]Store {
	redisStore, _ := setupRedisStore(t)
	return map[string]Store{
		"sqlite": setupSQLiteStore(t),
		"redis":  redisStore,
		"memory": NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("missing key returns ErrNotFound", func(t *testing.T) {
				_, err := store.Get(ctx, "absent")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("set then get", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "library", `[{"id":"a"}]`))
				got, err := store.Get(ctx, "library")
				require.NoError(t, err)
				assert.Equal(t, `[{"id":"a"}]`, got)
			})

			t.Run("set overwrites", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "settings", "v1"))
				require.NoError(t, store.Set(ctx, "settings", "v2"))
				got, err := store.Get(ctx, "settings")
				require.NoError(t, err)
				assert.Equal(t, "v2", got)
			})

			t.Run("empty value is stored", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "empty", ""))
				got, err := store.Get(ctx, "empty")
				require.NoError(t, err)
				assert.Equal(t, "", got)
			})

			t.Run("remove", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "gone", "x"))
				require.NoError(t, store.Remove(ctx, "gone"))
				_, err := store.Get(ctx, "gone")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("remove absent key", func(t *testing.T) {
				assert.NoError(t, store.Remove(ctx, "never-set"))
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, store.Ping(ctx))
			})
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := NewSQLiteStore(path, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "library", "[]"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, logger.Silent)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "library")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	require.NoError(t, store.Set(ctx, "library", "[]"))

	raw, err := mr.Get("rv:library")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
	assert.False(t, mr.Exists("library"))
}

func TestQuotaStore(t *testing.T) {
	ctx := context.Background()
	store := NewQuotaStore(NewMemoryStore(), 8)

	require.NoError(t, store.Set(ctx, "k", "12345678"))

	err := store.Set(ctx, "k", "123456789")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "12345678", got, "rejected write must leave previous value")
}

func TestOpen(t *testing.T) {
	t.Run("sqlite with quota", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{
			Backend:    config.BackendSQLite,
			Path:       filepath.Join(t.TempDir(), "kv.db"),
			QuotaBytes: 4,
		}}
		store, err := Open(cfg)
		require.NoError(t, err)
		defer store.Close()

		_, ok := store.(*QuotaStore)
		assert.True(t, ok)
		assert.ErrorIs(t, store.Set(context.Background(), "k", "too long"), ErrQuotaExceeded)
	})

	t.Run("memory without quota", func(t *testing.T) {
		store, err := Open(&config.Config{Storage: config.Storage{Backend: config.BackendMemory}})
		require.NoError(t, err)
		_, ok := store.(*MemoryStore)
		assert.True(t, ok)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := Open(&config.Config{
			Storage: config.Storage{Backend: config.BackendRedis},
			Redis:   config.Redis{Addr: mr.Addr(), Prefix: "x:"},
		})
		require.NoError(t, err)
		defer store.Close()
		assert.NoError(t, store.Ping(context.Background()))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(&config.Config{Storage: config.Storage{Backend: "etcd"}})
		assert.Error(t, err)
	})
}
