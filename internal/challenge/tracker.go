package challenge

import (
	"context"
	"log"

	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/library"
)

// Tracker keeps booksRead equal to the number of completed books.
type Tracker struct {
	service *Service
	repo    *library.Repository
	subs    []events.Subscription
}

// AutoTrack subscribes to library changes and performs an initial sync.
func AutoTrack(ctx context.Context, service *Service, repo *library.Repository) (*Tracker, error) {
	t := &Tracker{service: service, repo: repo}
	if err := t.sync(ctx); err != nil {
		return nil, err
	}
	t.subs = append(t.subs,
		repo.Subscribe(events.BooksUpdated, t.handle),
		repo.Subscribe(events.DataImported, t.handle),
	)
	log.Printf("Reading challenge auto-tracking enabled")
	return t, nil
}

func (t *Tracker) handle(events.Event) error {
	return t.sync(context.Background())
}

func (t *Tracker) sync(ctx context.Context) error {
	stats, err := t.repo.GetStats(ctx)
	if err != nil {
		return err
	}
	_, err = t.service.Sync(ctx, stats.Completed)
	return err
}

func (t *Tracker) Stop() {
	for _, sub := range t.subs {
		t.repo.Unsubscribe(sub)
	}
	t.subs = nil
}
