// Package search queries the OpenLibrary catalog for books and authors.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mrlokans/readvoyage/internal/entities"
)

const (
	DefaultBaseURL = "https://openlibrary.org"
	coversBaseURL  = "https://covers.openlibrary.org"
	userAgent      = "ReadVoyage/1.0 (https://github.com/mrlokans/readvoyage)"

	// maxSubjects bounds how many subjects are kept per result.
	maxSubjects = 10
)

// Client talks to the OpenLibrary search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates an OpenLibrary client. Empty baseURL selects the public API.
func NewClient(baseURL string, timeout, minInterval time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		rateLimiter: newRateLimiter(minInterval),
	}
}

// SearchBooks runs a free-text book search.
func (c *Client) SearchBooks(ctx context.Context, query string, limit int) ([]entities.SearchResult, error) {
	var result openLibrarySearchResult
	if err := c.get(ctx, "/search.json", query, limit, &result); err != nil {
		return nil, err
	}

	books := make([]entities.SearchResult, 0, len(result.Docs))
	for _, doc := range result.Docs {
		if doc.Title == "" {
			continue
		}
		books = append(books, convertSearchDoc(doc))
	}
	return books, nil
}

// SearchAuthors runs a free-text author search.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) ([]entities.AuthorResult, error) {
	var result openLibraryAuthorResult
	if err := c.get(ctx, "/search/authors.json", query, limit, &result); err != nil {
		return nil, err
	}

	authors := make([]entities.AuthorResult, 0, len(result.Docs))
	for _, doc := range result.Docs {
		authors = append(authors, entities.AuthorResult{
			Key:       doc.Key,
			Name:      doc.Name,
			BirthDate: doc.BirthDate,
			TopWork:   doc.TopWork,
			WorkCount: doc.WorkCount,
		})
	}
	return authors, nil
}

func (c *Client) get(ctx context.Context, path, query string, limit int, out any) error {
	c.rateLimiter.wait()

	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	searchURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "search " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: "decode " + path, Err: err}
	}
	return nil
}

// CoverURL builds the image URL for an OpenLibrary cover id. Size is S, M or L;
// anything else falls back to M. Returns "" when coverID is empty.
func CoverURL(coverID, size string) string {
	if coverID == "" {
		return ""
	}
	switch size {
	case "S", "M", "L":
	default:
		size = "M"
	}
	return fmt.Sprintf("%s/b/id/%s-%s.jpg", coversBaseURL, url.PathEscape(coverID), size)
}

func convertSearchDoc(doc openLibrarySearchDoc) entities.SearchResult {
	result := entities.SearchResult{
		Key:              doc.Key,
		Title:            doc.Title,
		Authors:          doc.AuthorName,
		FirstPublishYear: doc.FirstPublishYear,
	}
	if doc.CoverI != 0 {
		result.CoverID = strconv.Itoa(doc.CoverI)
	}
	if len(doc.Subject) > 0 {
		result.Subjects = doc.Subject
		if len(result.Subjects) > maxSubjects {
			result.Subjects = result.Subjects[:maxSubjects]
		}
	}
	return result
}

// OpenLibrary API response types (internal)

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int      `json:"cover_i"`
	Subject          []string `json:"subject"`
}

type openLibraryAuthorResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibraryAuthorDoc `json:"docs"`
}

type openLibraryAuthorDoc struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	TopWork   string `json:"top_work"`
	WorkCount int    `json:"work_count"`
}
