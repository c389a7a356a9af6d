package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// BackupRunner writes one snapshot and returns where it went.
type BackupRunner interface {
	RunOnce(ctx context.Context) (string, error)
}

// BackupSnapshotTask runs a backup outside the request that asked for it.
type BackupSnapshotTask struct {
	Reason string `json:"reason"`
}

func (t BackupSnapshotTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backup_snapshot",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
		},
	}
}

func BackupSnapshotProcessor(runner BackupRunner) backlite.QueueProcessor[BackupSnapshotTask] {
	return func(ctx context.Context, task BackupSnapshotTask) error {
		if runner == nil {
			return fmt.Errorf("backup not configured")
		}

		name, err := runner.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("backup (%s): %w", task.Reason, err)
		}
		if name == "" {
			log.Printf("[TASK] Backup (%s) skipped", task.Reason)
		} else {
			log.Printf("[TASK] Backup (%s) written to %s", task.Reason, name)
		}
		return nil
	}
}

func NewBackupSnapshotQueue(runner BackupRunner) backlite.Queue {
	return backlite.NewQueue(BackupSnapshotProcessor(runner))
}
