// Package challenge tracks the yearly reading goal.
//
// The counter lives in its own storage slot, independent of the library.
// When the calendar year changes the next read starts a fresh challenge
// that keeps the previous target.
package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/kvstore"
)

var (
	ErrInvalidValue = errors.New("challenge: invalid value")
	ErrPersistence  = errors.New("challenge: change not persisted")
)

type Service struct {
	store kvstore.Store
	now   func() time.Time

	mu sync.Mutex
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns the challenge for the current year.
func (s *Service) Get(ctx context.Context) (entities.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) SetTarget(ctx context.Context, target int) (entities.Challenge, error) {
	if target <= 0 {
		return entities.Challenge{}, fmt.Errorf("%w: target must be positive", ErrInvalidValue)
	}
	return s.mutate(ctx, func(c *entities.Challenge) { c.Target = target })
}

func (s *Service) SetBooksRead(ctx context.Context, n int) (entities.Challenge, error) {
	if n < 0 {
		return entities.Challenge{}, fmt.Errorf("%w: books read must not be negative", ErrInvalidValue)
	}
	return s.mutate(ctx, func(c *entities.Challenge) { c.BooksRead = n })
}

func (s *Service) Increment(ctx context.Context) (entities.Challenge, error) {
	return s.mutate(ctx, func(c *entities.Challenge) { c.BooksRead++ })
}

// Sync sets booksRead to completed unless it already matches.
func (s *Service) Sync(ctx context.Context, completed int) (entities.Challenge, error) {
	if completed < 0 {
		completed = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return entities.Challenge{}, err
	}
	if c.BooksRead == completed {
		return c, nil
	}
	c.BooksRead = completed
	if err := s.save(ctx, c); err != nil {
		return entities.Challenge{}, err
	}
	return c, nil
}

func (s *Service) mutate(ctx context.Context, fn func(*entities.Challenge)) (entities.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return entities.Challenge{}, err
	}
	fn(&c)
	if err := s.save(ctx, c); err != nil {
		return entities.Challenge{}, err
	}
	return c, nil
}

// load must be called with s.mu held.
func (s *Service) load(ctx context.Context) (entities.Challenge, error) {
	year := s.now().Year()
	fresh := entities.Challenge{Year: year, Target: entities.DefaultChallengeTarget}

	raw, err := s.store.Get(ctx, entities.SlotReadingChallenge)
	if errors.Is(err, kvstore.ErrNotFound) {
		return fresh, nil
	}
	if err != nil {
		return entities.Challenge{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	var c entities.Challenge
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// An unreadable counter starts over.
		return fresh, nil
	}
	if c.Target <= 0 {
		c.Target = entities.DefaultChallengeTarget
	}
	if c.BooksRead < 0 {
		c.BooksRead = 0
	}
	switch {
	case c.Year == 0:
		c.Year = year
	case c.Year != year:
		fresh.Target = c.Target
		if err := s.save(ctx, fresh); err != nil {
			return entities.Challenge{}, err
		}
		return fresh, nil
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c entities.Challenge) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, entities.SlotReadingChallenge, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
