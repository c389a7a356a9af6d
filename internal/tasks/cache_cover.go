package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CoverFetcher downloads a cover into the local cache.
type CoverFetcher interface {
	GetCover(ctx context.Context, bookID, coverURL string) (string, error)
}

// CacheCoverTask prefetches the cover of one book.
type CacheCoverTask struct {
	BookID   string `json:"book_id"`
	CoverURL string `json:"cover_url"`
}

// Config returns the queue configuration for cover caching tasks.
func (t CacheCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cache_cover",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func CacheCoverProcessor(fetcher CoverFetcher) backlite.QueueProcessor[CacheCoverTask] {
	return func(ctx context.Context, task CacheCoverTask) error {
		if fetcher == nil {
			return fmt.Errorf("cover cache not configured")
		}

		path, err := fetcher.GetCover(ctx, task.BookID, task.CoverURL)
		if err != nil {
			return fmt.Errorf("cache cover for %s: %w", task.BookID, err)
		}

		log.Printf("[TASK] Cached cover for %s at %s", task.BookID, path)
		return nil
	}
}

func NewCacheCoverQueue(fetcher CoverFetcher) backlite.Queue {
	return backlite.NewQueue(CacheCoverProcessor(fetcher))
}
