package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
)

// ListBooks returns the library in insertion order.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneBooks(r.books), nil
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.ReadingStatus) ([]entities.Book, error) {
	books, err := r.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// SearchLibrary matches text case-insensitively against title and author.
// Blank text returns the whole library.
func (r *Repository) SearchLibrary(ctx context.Context, text string) ([]entities.Book, error) {
	books, err := r.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return MatchText(books, text), nil
}

// MatchText keeps the books whose title or author contains text, ignoring
// case. Blank text keeps every book.
func MatchText(books []entities.Book, text string) []entities.Book {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return books
	}
	out := make([]entities.Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) || strings.Contains(strings.ToLower(b.Author), needle) {
			out = append(out, b)
		}
	}
	return out
}

func (r *Repository) GetBook(ctx context.Context, id string) (entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Book{}, err
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.books[idx].Clone(), nil
}

func (r *Repository) AddBook(ctx context.Context, nb entities.NewBook) (entities.Book, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	book, err := r.addBook(ctx, nb)
	if err != nil {
		return entities.Book{}, err
	}
	published := book.Clone()
	r.publishBooks(events.ActionAdd, &published)
	return book, nil
}

// AddSearchResult adds a catalog search result as an unread book.
func (r *Repository) AddSearchResult(ctx context.Context, res entities.SearchResult) (entities.Book, error) {
	author := strings.Join(res.Authors, ", ")
	if strings.TrimSpace(author) == "" {
		author = entities.UnknownAuthor
	}
	return r.AddBook(ctx, entities.NewBook{
		Title:            res.Title,
		Author:           author,
		Status:           entities.StatusUnread,
		Category:         entities.CategoryOther,
		CoverID:          res.CoverID,
		FirstPublishYear: res.FirstPublishYear,
		Subjects:         res.Subjects,
	})
}

func (r *Repository) addBook(ctx context.Context, nb entities.NewBook) (entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Book{}, err
	}

	book, err := r.buildBook(nb)
	if err != nil {
		return entities.Book{}, err
	}
	for r.indexOf(book.ID) >= 0 {
		book.ID = r.newID()
	}

	next := make([]entities.Book, len(r.books), len(r.books)+1)
	copy(next, r.books)
	next = append(next, book)

	if err := r.persistBooks(ctx, next); err != nil {
		return entities.Book{}, err
	}
	r.books = next
	return book.Clone(), nil
}

func (r *Repository) buildBook(nb entities.NewBook) (entities.Book, error) {
	title := strings.TrimSpace(nb.Title)
	if title == "" {
		return entities.Book{}, fmt.Errorf("%w: title is required", ErrInvalidBook)
	}
	status := nb.Status
	if status == "" {
		status = entities.StatusUnread
	}
	if !status.Valid() {
		return entities.Book{}, fmt.Errorf("%w: unknown status %q", ErrInvalidBook, nb.Status)
	}
	if !nb.Category.Valid() {
		return entities.Book{}, fmt.Errorf("%w: unknown category %q", ErrInvalidBook, nb.Category)
	}
	if nb.Pages < 0 {
		return entities.Book{}, fmt.Errorf("%w: pages must not be negative", ErrInvalidBook)
	}
	author := strings.TrimSpace(nb.Author)
	if author == "" {
		author = entities.UnknownAuthor
	}

	now := r.now()
	book := entities.Book{
		ID:               r.newID(),
		Title:            title,
		Author:           author,
		Status:           status,
		Category:         nb.Category,
		Pages:            nb.Pages,
		CoverID:          nb.CoverID,
		Description:      nb.Description,
		FirstPublishYear: nb.FirstPublishYear,
		AddedDate:        now,
		LastUpdated:      now,
	}
	if nb.Subjects != nil {
		book.Subjects = append([]string(nil), nb.Subjects...)
	}
	return book, nil
}

// UpdateBook merges patch over the book with the given id and bumps lastUpdated.
func (r *Repository) UpdateBook(ctx context.Context, id string, patch entities.BookPatch) (entities.Book, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	book, err := r.updateBook(ctx, id, patch)
	if err != nil {
		return entities.Book{}, err
	}
	published := book.Clone()
	r.publishBooks(events.ActionUpdate, &published)
	return book, nil
}

func (r *Repository) updateBook(ctx context.Context, id string, patch entities.BookPatch) (entities.Book, error) {
	if err := validatePatch(patch); err != nil {
		return entities.Book{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Book{}, err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := patch.Apply(r.books[idx])
	updated.LastUpdated = r.now()
	if updated.LastUpdated.Before(updated.AddedDate) {
		updated.LastUpdated = updated.AddedDate
	}

	next := cloneBooks(r.books)
	next[idx] = updated

	if err := r.persistBooks(ctx, next); err != nil {
		return entities.Book{}, err
	}
	r.books = next
	return updated.Clone(), nil
}

func validatePatch(p entities.BookPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidBook)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBook, *p.Status)
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBook, *p.Category)
	}
	if p.Pages != nil && *p.Pages < 0 {
		return fmt.Errorf("%w: pages must not be negative", ErrInvalidBook)
	}
	return nil
}

// DeleteBook removes the book with the given id. A missing id is reported
// as ErrNotFound, the same as UpdateBook.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	removed, err := r.deleteBook(ctx, id)
	if err != nil {
		return err
	}
	r.publishBooks(events.ActionDelete, &removed)
	return nil
}

func (r *Repository) deleteBook(ctx context.Context, id string) (entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Book{}, err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := make([]entities.Book, 0, len(r.books)-1)
	next = append(next, r.books[:idx]...)
	next = append(next, r.books[idx+1:]...)

	if err := r.persistBooks(ctx, next); err != nil {
		return entities.Book{}, err
	}
	removed := r.books[idx].Clone()
	r.books = next
	return removed, nil
}

func (r *Repository) ClearLibrary(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.clearLibrary(ctx); err != nil {
		return err
	}
	r.publishBooks(events.ActionClear, nil)
	return nil
}

func (r *Repository) clearLibrary(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	empty := []entities.Book{}
	if err := r.persistBooks(ctx, empty); err != nil {
		return err
	}
	r.books = empty
	return nil
}

// GetStats counts books by status. Recomputed on every call.
func (r *Repository) GetStats(ctx context.Context) (entities.LibraryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.LibraryStats{}, err
	}

	stats := entities.LibraryStats{Total: len(r.books)}
	for _, b := range r.books {
		switch b.Status {
		case entities.StatusReading:
			stats.Reading++
		case entities.StatusCompleted:
			stats.Completed++
		case entities.StatusUnread:
			stats.Unread++
		}
	}
	return stats, nil
}

func (r *Repository) indexOf(id string) int {
	for i, b := range r.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
