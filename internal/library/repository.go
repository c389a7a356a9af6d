// Package library owns the book list and the settings record.
//
// All reads and writes of persisted library state go through Repository.
// Each mutation is applied to a working copy, the full list is written to
// the key-value store, and only then is the copy committed in memory and an
// event published. A failed write leaves both the store and the in-memory
// state as they were before the call. Mutations are serialized, and their
// events are published in the same order.
//
// # Usage
//
//	repo := library.NewRepository(store, events.NewBus())
//	book, err := repo.AddBook(ctx, entities.NewBook{Title: "Dune", Author: "Frank Herbert"})
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/kvstore"
)

var (
	ErrPersistence     = errors.New("library: change not persisted")
	ErrNotFound        = errors.New("library: book not found")
	ErrMalformedData   = errors.New("library: malformed data")
	ErrInvalidBook     = errors.New("library: invalid book")
	ErrInvalidSettings = errors.New("library: invalid settings")
)

// Repository is safe for concurrent use. The in-memory copy is loaded once
// and is the source of truth afterwards; the store is never re-read.
type Repository struct {
	store kvstore.Store
	bus   *events.Bus
	now   func() time.Time
	newID func() string

	// writeMu is held across a mutation and the publish that follows it,
	// so subscribers see events in commit order. Handlers may read the
	// repository but must not mutate it.
	writeMu sync.Mutex

	mu          sync.Mutex
	initialized bool
	books       []entities.Book
	settings    entities.Settings
}

func NewRepository(store kvstore.Store, bus *events.Bus) *Repository {
	return &Repository{
		store: store,
		bus:   bus,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return "book_" + uuid.NewString() },
	}
}

// Initialize loads both slots, writing an empty library and default
// settings for slots that do not exist yet. A slot that cannot be parsed is
// moved to "<slot>.corrupt" and reset the same way. Calling it again is a no-op.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureLoaded(ctx)
}

func (r *Repository) Subscribe(name string, handler events.Handler) events.Subscription {
	return r.bus.Subscribe(name, handler)
}

func (r *Repository) Unsubscribe(sub events.Subscription) {
	r.bus.Unsubscribe(sub)
}

// ensureLoaded must be called with r.mu held.
func (r *Repository) ensureLoaded(ctx context.Context) error {
	if r.initialized {
		return nil
	}

	books, err := r.loadBooks(ctx)
	if err != nil {
		return err
	}
	settings, err := r.loadSettings(ctx)
	if err != nil {
		return err
	}

	r.books = books
	r.settings = settings
	r.initialized = true
	return nil
}

func (r *Repository) loadBooks(ctx context.Context) ([]entities.Book, error) {
	raw, err := r.store.Get(ctx, entities.SlotLibrary)
	if errors.Is(err, kvstore.ErrNotFound) {
		books := []entities.Book{}
		if err := r.persistBooks(ctx, books); err != nil {
			return nil, err
		}
		return books, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load library: %w", ErrPersistence, err)
	}

	books, err := decodeStoredBooks(raw)
	if err != nil {
		if err := r.quarantine(ctx, entities.SlotLibrary, raw, err); err != nil {
			return nil, err
		}
		books = []entities.Book{}
		if err := r.persistBooks(ctx, books); err != nil {
			return nil, err
		}
	}
	return books, nil
}

func decodeStoredBooks(raw string) ([]entities.Book, error) {
	var books []entities.Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		return nil, fmt.Errorf("%w: stored library: %v", ErrMalformedData, err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	for i := range books {
		status, ok := entities.ParseStatus(string(books[i].Status))
		if !ok {
			return nil, fmt.Errorf("%w: stored book %q has status %q", ErrMalformedData, books[i].ID, books[i].Status)
		}
		books[i].Status = status
	}
	return books, nil
}

// quarantine copies an unreadable slot value to slot+CorruptSlotSuffix so
// the slot can be reset without losing the original bytes. If the copy
// cannot be written the slot is left alone and ErrPersistence is returned.
func (r *Repository) quarantine(ctx context.Context, slot, raw string, cause error) error {
	backup := slot + entities.CorruptSlotSuffix
	if err := r.store.Set(ctx, backup, raw); err != nil {
		log.Printf("Failed to move unreadable %s slot aside: %v", slot, err)
		return fmt.Errorf("%w: %w (stored value kept: %v)", ErrPersistence, err, cause)
	}
	log.Printf("WARNING: %v; original value moved to %q, starting from defaults", cause, backup)
	return nil
}

func (r *Repository) loadSettings(ctx context.Context) (entities.Settings, error) {
	raw, err := r.store.Get(ctx, entities.SlotSettings)
	if errors.Is(err, kvstore.ErrNotFound) {
		settings := entities.DefaultSettings()
		if err := r.persistSettings(ctx, settings); err != nil {
			return entities.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return entities.Settings{}, fmt.Errorf("%w: load settings: %w", ErrPersistence, err)
	}

	// Fields missing from older records keep their defaults.
	settings := entities.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		cause := fmt.Errorf("%w: stored settings: %v", ErrMalformedData, err)
		if err := r.quarantine(ctx, entities.SlotSettings, raw, cause); err != nil {
			return entities.Settings{}, err
		}
		settings = entities.DefaultSettings()
		if err := r.persistSettings(ctx, settings); err != nil {
			return entities.Settings{}, err
		}
	}
	return settings, nil
}

func (r *Repository) persistBooks(ctx context.Context, books []entities.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("%w: encode library: %w", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, entities.SlotLibrary, string(data)); err != nil {
		log.Printf("Failed to persist library (%d books): %v", len(books), err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (r *Repository) persistSettings(ctx context.Context, settings entities.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %w", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, entities.SlotSettings, string(data)); err != nil {
		log.Printf("Failed to persist settings: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (r *Repository) publishBooks(action events.BookAction, book *entities.Book) {
	r.bus.Publish(events.BooksUpdated, events.BooksChange{Action: action, Book: book})
}

func cloneBooks(books []entities.Book) []entities.Book {
	out := make([]entities.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
