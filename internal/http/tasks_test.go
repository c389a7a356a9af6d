package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/tasks"
)

type fakeBackup struct {
	name  string
	err   error
	calls int
}

func (f *fakeBackup) RunOnce(context.Context) (string, error) {
	f.calls++
	return f.name, f.err
}

func TestBackupAPI_Inline(t *testing.T) {
	t.Run("written", func(t *testing.T) {
		runner := &fakeBackup{name: "readvoyage-20240501T030000Z.json"}
		app := setupApp(t, func(cfg *RouterConfig) { cfg.Backup = runner })

		w := app.do("POST", "/api/backup", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), runner.name)
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("skipped", func(t *testing.T) {
		app := setupApp(t, func(cfg *RouterConfig) { cfg.Backup = &fakeBackup{} })

		w := app.do("POST", "/api/backup", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "skipped")
	})

	t.Run("failed", func(t *testing.T) {
		app := setupApp(t, func(cfg *RouterConfig) { cfg.Backup = &fakeBackup{err: errors.New("disk full")} })

		w := app.do("POST", "/api/backup", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestBackupAPI_Queued(t *testing.T) {
	cfg := tasks.DefaultConfig()
	cfg.Workers = 1
	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "tasks.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	runner := &fakeBackup{name: "readvoyage-1.json"}
	client.Register(tasks.NewBackupSnapshotQueue(runner))

	app := setupApp(t, func(rc *RouterConfig) {
		rc.TaskClient = client
		rc.Backup = runner
	})

	w := app.do("POST", "/api/backup", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	resp := decode[map[string]string](t, w)
	require.NotEmpty(t, resp["task_id"])
	assert.Equal(t, 0, runner.calls, "queued backups run on a worker, not inline")

	w = app.do("GET", "/api/tasks/"+resp["task_id"], nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending"`)

	w = app.do("GET", "/api/tasks/unknown-task", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackupAPI_QueueWithoutBackups(t *testing.T) {
	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "tasks.db"), tasks.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	app := setupApp(t, func(rc *RouterConfig) { rc.TaskClient = client })

	w := app.do("POST", "/api/backup", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "backup route is not registered without a runner")

	w = app.do("GET", "/api/tasks/unknown-task", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "task not found")

	t.Run("controller refuses to queue without a runner", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest("POST", "/api/backup", nil)

		NewTasksController(client, nil).Backup(c)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "backups are disabled")
	})
}
