package tasks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/covers"
)

func setupClient(t *testing.T) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "tasks.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "tasks database should be created")
	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client := setupClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStop_NotStarted(t *testing.T) {
	client := setupClient(t)
	assert.True(t, client.Stop(context.Background()))
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client := setupClient(t)

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Enqueue(TestTask{Value: "hello"})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestCacheCoverQueue_EndToEnd(t *testing.T) {
	fetched := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
		fetched <- struct{}{}
	}))
	defer server.Close()

	cache, err := covers.NewCache(t.TempDir())
	require.NoError(t, err)

	client := setupClient(t)
	client.Register(NewCacheCoverQueue(cache))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	_, err = client.Enqueue(CacheCoverTask{BookID: "book_1", CoverURL: server.URL + "/1-M.jpg"})
	require.NoError(t, err)

	select {
	case <-fetched:
	case <-time.After(5 * time.Second):
		t.Fatal("cover was not fetched within timeout")
	}

	assert.Eventually(t, func() bool {
		matches, _ := filepath.Glob(filepath.Join(cache.CacheDir(), "cover_book_1_*"))
		return len(matches) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestCacheCoverTaskConfig(t *testing.T) {
	cfg := CacheCoverTask{BookID: "book_1"}.Config()

	assert.Equal(t, "cache_cover", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCacheCoverProcessor_NilFetcher(t *testing.T) {
	err := CacheCoverProcessor(nil)(context.Background(), CacheCoverTask{BookID: "book_1"})
	assert.Error(t, err)
}

type fakeRunner struct {
	name string
	err  error
}

func (f fakeRunner) RunOnce(context.Context) (string, error) {
	return f.name, f.err
}

func TestBackupSnapshotProcessor(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, BackupSnapshotProcessor(fakeRunner{name: "readvoyage-1.json"})(ctx, BackupSnapshotTask{Reason: "manual"}))
	assert.NoError(t, BackupSnapshotProcessor(fakeRunner{})(ctx, BackupSnapshotTask{Reason: "manual"}))

	err := BackupSnapshotProcessor(fakeRunner{err: errors.New("disk full")})(ctx, BackupSnapshotTask{Reason: "manual"})
	assert.ErrorContains(t, err, "disk full")

	assert.Equal(t, "backup_snapshot", BackupSnapshotTask{}.Config().Name)
}

func TestQueues(t *testing.T) {
	cache, err := covers.NewCache(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, Queues(nil, nil))
	assert.Len(t, Queues(fakeRunner{}, nil), 1)
	assert.Len(t, Queues(nil, cache), 1)
	assert.Len(t, Queues(fakeRunner{}, cache), 2)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.Tasks{Workers: 4, CleanupInterval: 10 * time.Minute})

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter, "zero values fall back to defaults")
}
