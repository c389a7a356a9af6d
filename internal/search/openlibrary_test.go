package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		baseURL:     serverURL,
		rateLimiter: newRateLimiter(0),
	}
}

func TestSearchBooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "dune herbert", r.URL.Query().Get("q"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Contains(t, r.Header.Get("User-Agent"), "ReadVoyage")

		subjects := make([]string, 15)
		for i := range subjects {
			subjects[i] = "subject"
		}
		response := openLibrarySearchResult{
			NumFound: 3,
			Docs: []openLibrarySearchDoc{
				{Key: "/works/OL893415W", Title: "Dune", AuthorName: []string{"Frank Herbert"}, FirstPublishYear: 1965, CoverI: 11481354, Subject: subjects},
				{Key: "/works/OL1W", Title: ""},
				{Key: "/works/OL2W", Title: "Dune Messiah"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).SearchBooks(context.Background(), "dune herbert", 20)
	require.NoError(t, err)
	require.Len(t, results, 2, "untitled docs are skipped")

	dune := results[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, []string{"Frank Herbert"}, dune.Authors)
	assert.Equal(t, 1965, dune.FirstPublishYear)
	assert.Equal(t, "11481354", dune.CoverID)
	assert.Len(t, dune.Subjects, maxSubjects)

	assert.Empty(t, results[1].CoverID)
	assert.Nil(t, results[1].Authors)
}

func TestSearchAuthors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/authors.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"OL79034A","name":"Frank Herbert","birth_date":"8 October 1920","top_work":"Dune","work_count":160}]}`))
	}))
	defer server.Close()

	authors, err := newTestClient(server.URL).SearchAuthors(context.Background(), "herbert", 10)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Frank Herbert", authors[0].Name)
	assert.Equal(t, "8 October 1920", authors[0].BirthDate)
	assert.Equal(t, "Dune", authors[0].TopWork)
	assert.Equal(t, 160, authors[0].WorkCount)
}

func TestSearchBooks_Errors(t *testing.T) {
	t.Run("non-200 is an HTTPError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).SearchBooks(context.Background(), "dune", 5)
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	})

	t.Run("unreachable host is a NetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url).SearchBooks(context.Background(), "dune", 5)
		var netErr *NetworkError
		assert.True(t, errors.As(err, &netErr))
	})

	t.Run("invalid body is a NetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).SearchBooks(context.Background(), "dune", 5)
		var netErr *NetworkError
		assert.True(t, errors.As(err, &netErr))
	})
}

func TestCoverURL(t *testing.T) {
	tests := []struct {
		coverID  string
		size     string
		expected string
	}{
		{"8231856", "M", "https://covers.openlibrary.org/b/id/8231856-M.jpg"},
		{"8231856", "L", "https://covers.openlibrary.org/b/id/8231856-L.jpg"},
		{"8231856", "XL", "https://covers.openlibrary.org/b/id/8231856-M.jpg"},
		{"", "M", ""},
	}

	for _, tt := range tests {
		t.Run(tt.coverID+"-"+tt.size, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoverURL(tt.coverID, tt.size))
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0, time.Second)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}
