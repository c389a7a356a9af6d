package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/kvstore"
	"github.com/mrlokans/readvoyage/internal/library"
)

func setupService(t *testing.T, year int) (*Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestService_Defaults(t *testing.T) {
	svc, _ := setupService(t, 2024)

	c, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.Challenge{Year: 2024, Target: 12, BooksRead: 0}, c)
	assert.Equal(t, 0.0, c.Progress())
	assert.Equal(t, 12, c.Remaining())
}

func TestService_Mutations(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, 2024)

	c, err := svc.SetTarget(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Target)

	c, err = svc.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.BooksRead)
	assert.Equal(t, 25.0, c.Progress())

	c, err = svc.SetBooksRead(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 100.0, c.Progress(), "progress is capped")
	assert.Equal(t, 0, c.Remaining())

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestService_RejectsInvalidValues(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, 2024)

	_, err := svc.SetTarget(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = svc.SetBooksRead(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestService_YearRollover(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t, 2024)
	_, err := svc.SetTarget(ctx, 30)
	require.NoError(t, err)
	_, err = svc.SetBooksRead(ctx, 17)
	require.NoError(t, err)

	next := NewService(store)
	next.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	c, err := next.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Challenge{Year: 2025, Target: 30, BooksRead: 0}, c)
}

func TestService_LegacyRecordWithoutYear(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t, 2024)
	require.NoError(t, store.Set(ctx, entities.SlotReadingChallenge, `{"target":5,"booksRead":2}`))

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Challenge{Year: 2024, Target: 5, BooksRead: 2}, c)
}

func TestService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewQuotaStore(kvstore.NewMemoryStore(), 1)
	svc := NewService(store)

	_, err := svc.Increment(ctx)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestChallenge_Motivation(t *testing.T) {
	cases := []struct {
		read int
		want string
	}{
		{0, "Start your reading journey! Add your first book to begin."},
		{1, "Great start! Every book counts toward your goal."},
		{3, "You're making progress! Keep up the good work."},
		{6, "Halfway there! You're doing amazing."},
		{11, "Almost there! Just a few more books to go."},
		{12, "Congratulations! You've reached your reading goal!"},
		{20, "Congratulations! You've reached your reading goal!"},
	}
	for _, tc := range cases {
		c := entities.Challenge{Target: 12, BooksRead: tc.read}
		assert.Equal(t, tc.want, c.Motivation(), "booksRead=%d", tc.read)
	}
}

func TestAutoTrack(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := library.NewRepository(store, events.NewBus())
	svc := NewService(store)

	done := entities.StatusCompleted
	_, err := repo.AddBook(ctx, entities.NewBook{Title: "Already read", Status: done})
	require.NoError(t, err)

	tracker, err := AutoTrack(ctx, svc, repo)
	require.NoError(t, err)

	c, _ := svc.Get(ctx)
	assert.Equal(t, 1, c.BooksRead, "initial sync")

	book, err := repo.AddBook(ctx, entities.NewBook{Title: "Dune"})
	require.NoError(t, err)
	_, err = repo.UpdateBook(ctx, book.ID, entities.BookPatch{Status: &done})
	require.NoError(t, err)

	c, _ = svc.Get(ctx)
	assert.Equal(t, 2, c.BooksRead)

	require.NoError(t, repo.ClearLibrary(ctx))
	c, _ = svc.Get(ctx)
	assert.Equal(t, 0, c.BooksRead)

	tracker.Stop()
	_, err = repo.AddBook(ctx, entities.NewBook{Title: "Emma", Status: done})
	require.NoError(t, err)
	c, _ = svc.Get(ctx)
	assert.Equal(t, 0, c.BooksRead, "stopped tracker no longer syncs")
}
