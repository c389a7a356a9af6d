package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/entities"
)

type fakeSearcher struct {
	calls   atomic.Int32
	delay   time.Duration
	err     error
	books   []entities.SearchResult
	authors []entities.AuthorResult
}

func (f *fakeSearcher) SearchBooks(ctx context.Context, query string, limit int) ([]entities.SearchResult, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	return f.books, nil
}

func (f *fakeSearcher) SearchAuthors(ctx context.Context, query string, limit int) ([]entities.AuthorResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.authors, nil
}

func TestGateway_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query makes no request", func(t *testing.T) {
		fake := &fakeSearcher{}
		gw, err := NewGateway(fake, 20, 8)
		require.NoError(t, err)

		results, msg := gw.Find(ctx, "   ")
		assert.Empty(t, results)
		assert.Equal(t, MsgEmptyQuery, msg)
		assert.Zero(t, fake.calls.Load())
	})

	t.Run("cache hit avoids a second request", func(t *testing.T) {
		fake := &fakeSearcher{books: []entities.SearchResult{{Title: "Dune"}}}
		gw, err := NewGateway(fake, 20, 8)
		require.NoError(t, err)

		first, msg := gw.Find(ctx, "Dune")
		assert.Empty(t, msg)
		second, _ := gw.Find(ctx, "  dune ")
		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), fake.calls.Load())
	})

	t.Run("no results carries a message", func(t *testing.T) {
		gw, err := NewGateway(&fakeSearcher{books: []entities.SearchResult{}}, 20, 8)
		require.NoError(t, err)

		results, msg := gw.Find(ctx, "zzzz")
		assert.Empty(t, results)
		assert.Equal(t, MsgNoResults, msg)
	})

	t.Run("network failure becomes message", func(t *testing.T) {
		fake := &fakeSearcher{err: &NetworkError{Op: "search", Err: errors.New("connection refused")}}
		gw, err := NewGateway(fake, 20, 8)
		require.NoError(t, err)

		results, msg := gw.Find(ctx, "dune")
		assert.NotNil(t, results)
		assert.Empty(t, results)
		assert.Equal(t, MsgNetworkError, msg)

		_, _ = gw.Find(ctx, "dune")
		assert.Equal(t, int32(2), fake.calls.Load(), "failures are not cached")
	})

	t.Run("http failure mentions status", func(t *testing.T) {
		gw, err := NewGateway(&fakeSearcher{err: &HTTPError{StatusCode: 500}}, 20, 8)
		require.NoError(t, err)

		_, msg := gw.Find(ctx, "dune")
		assert.Contains(t, msg, "500")
	})

	t.Run("concurrent identical queries share one request", func(t *testing.T) {
		fake := &fakeSearcher{delay: 100 * time.Millisecond, books: []entities.SearchResult{{Title: "Dune"}}}
		gw, err := NewGateway(fake, 20, 8)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results, _ := gw.Find(ctx, "dune")
				assert.Len(t, results, 1)
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, fake.calls.Load(), int32(2))
	})
}

func TestGateway_FindAuthors(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSearcher{authors: []entities.AuthorResult{{Key: "OL79034A", Name: "Frank Herbert"}}}
	gw, err := NewGateway(fake, 10, 8)
	require.NoError(t, err)

	authors, msg := gw.FindAuthors(ctx, "herbert")
	assert.Empty(t, msg)
	require.Len(t, authors, 1)

	_, _ = gw.FindAuthors(ctx, "Herbert")
	assert.Equal(t, int32(1), fake.calls.Load())

	_, msg = gw.FindAuthors(ctx, "")
	assert.Equal(t, MsgEmptyQuery, msg)
}
