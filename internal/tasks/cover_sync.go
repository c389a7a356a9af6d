package tasks

import (
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/search"
)

// Enqueuer is satisfied by Client.
type Enqueuer interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
}

type CoverInvalidator interface {
	Invalidate(bookID string) error
	InvalidateAll() error
}

// CoverSync keeps the cover cache in step with the library: covers of added
// or edited books are fetched in the background, covers of removed books
// are dropped.
type CoverSync struct {
	queue  Enqueuer
	covers CoverInvalidator
}

func NewCoverSync(queue Enqueuer, covers CoverInvalidator) *CoverSync {
	return &CoverSync{queue: queue, covers: covers}
}

// HandleBooksUpdated is an events.Handler for events.BooksUpdated.
func (s *CoverSync) HandleBooksUpdated(e events.Event) error {
	change, ok := e.Payload.(events.BooksChange)
	if !ok {
		return nil
	}

	switch change.Action {
	case events.ActionAdd, events.ActionUpdate:
		if change.Book == nil || change.Book.CoverID == "" || s.queue == nil {
			return nil
		}
		task := CacheCoverTask{
			BookID:   change.Book.ID,
			CoverURL: search.CoverURL(change.Book.CoverID, "M"),
		}
		if _, err := s.queue.Enqueue(task); err != nil {
			return err
		}
	case events.ActionDelete:
		if change.Book != nil {
			return s.covers.Invalidate(change.Book.ID)
		}
	case events.ActionClear:
		return s.covers.InvalidateAll()
	}
	return nil
}

// HandleDataImported drops every cached cover; ids may now refer to other books.
func (s *CoverSync) HandleDataImported(events.Event) error {
	log.Printf("[TASK] Library imported, clearing cover cache")
	return s.covers.InvalidateAll()
}
