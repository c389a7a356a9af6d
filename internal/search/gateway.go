package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mrlokans/readvoyage/internal/entities"
)

const (
	MsgEmptyQuery   = "Please enter a search term."
	MsgNoResults    = "No results found. Try adjusting your search terms."
	MsgNetworkError = "Failed to fetch results. Please check your connection and try again."
)

// Searcher is implemented by Client; tests substitute their own.
type Searcher interface {
	SearchBooks(ctx context.Context, query string, limit int) ([]entities.SearchResult, error)
	SearchAuthors(ctx context.Context, query string, limit int) ([]entities.AuthorResult, error)
}

// Gateway is the boundary between the catalog client and its callers.
// Failures never escape it: they become an empty result plus a message
// suitable for showing to the user. Successful lookups are cached and
// concurrent identical lookups share one request.
type Gateway struct {
	client  Searcher
	limit   int
	books   *lru.Cache[string, []entities.SearchResult]
	authors *lru.Cache[string, []entities.AuthorResult]
	group   singleflight.Group
}

func NewGateway(client Searcher, limit, cacheSize int) (*Gateway, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	books, err := lru.New[string, []entities.SearchResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create book cache: %w", err)
	}
	authors, err := lru.New[string, []entities.AuthorResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create author cache: %w", err)
	}
	return &Gateway{client: client, limit: limit, books: books, authors: authors}, nil
}

// Find searches books. The message is empty when results were found.
func (g *Gateway) Find(ctx context.Context, query string) ([]entities.SearchResult, string) {
	key := normalizeQuery(query)
	if key == "" {
		return []entities.SearchResult{}, MsgEmptyQuery
	}
	if cached, ok := g.books.Get(key); ok {
		return cached, messageFor(len(cached))
	}

	v, err, _ := g.group.Do("books:"+key, func() (any, error) {
		results, err := g.client.SearchBooks(ctx, strings.TrimSpace(query), g.limit)
		if err != nil {
			return nil, err
		}
		g.books.Add(key, results)
		return results, nil
	})
	if err != nil {
		log.Printf("Book search for %q failed: %v", query, err)
		return []entities.SearchResult{}, failureMessage(err)
	}
	results := v.([]entities.SearchResult)
	return results, messageFor(len(results))
}

// FindAuthors searches authors with the same failure handling as Find.
func (g *Gateway) FindAuthors(ctx context.Context, query string) ([]entities.AuthorResult, string) {
	key := normalizeQuery(query)
	if key == "" {
		return []entities.AuthorResult{}, MsgEmptyQuery
	}
	if cached, ok := g.authors.Get(key); ok {
		return cached, messageFor(len(cached))
	}

	v, err, _ := g.group.Do("authors:"+key, func() (any, error) {
		results, err := g.client.SearchAuthors(ctx, strings.TrimSpace(query), g.limit)
		if err != nil {
			return nil, err
		}
		g.authors.Add(key, results)
		return results, nil
	})
	if err != nil {
		log.Printf("Author search for %q failed: %v", query, err)
		return []entities.AuthorResult{}, failureMessage(err)
	}
	results := v.([]entities.AuthorResult)
	return results, messageFor(len(results))
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func messageFor(n int) string {
	if n == 0 {
		return MsgNoResults
	}
	return ""
}

func failureMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("The catalog returned an error (status %d). Please try again later.", httpErr.StatusCode)
	}
	return MsgNetworkError
}
