package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readvoyage/internal/tasks"
)

// TasksController handles task queue and backup endpoints.
type TasksController struct {
	client *tasks.Client
	backup BackupRunner
}

func NewTasksController(client *tasks.Client, backup BackupRunner) *TasksController {
	return &TasksController{client: client, backup: backup}
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.client == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": taskStatusToString(status)})
}

// Backup handles POST /api/backup
// With a task queue the snapshot is taken in the background and the task
// ID is returned; otherwise it runs inline.
func (tc *TasksController) Backup(c *gin.Context) {
	if tc.backup == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "backups are disabled"})
		return
	}

	if tc.client != nil {
		ids, err := tc.client.Enqueue(tasks.BackupSnapshotTask{Reason: "api"})
		if err != nil {
			respondInternalError(c, err, "enqueue backup")
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"task_id": ids[0], "status": "queued"})
		return
	}

	name, err := tc.backup.RunOnce(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "backup")
		return
	}
	if name == "" {
		respondSuccess(c, "backup skipped: autoSave is off")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "backup written", Data: gin.H{"name": name}})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	default:
		return "not_found"
	}
}
