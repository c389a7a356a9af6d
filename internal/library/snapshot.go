package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
)

// Snapshot captures the current library and settings in the export envelope.
func (r *Repository) Snapshot(ctx context.Context) (entities.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Snapshot{}, err
	}
	return entities.Snapshot{
		Library:    cloneBooks(r.books),
		Settings:   r.settings,
		ExportedAt: r.now(),
		Version:    entities.SnapshotVersion,
	}, nil
}

// ExportSnapshot serializes the envelope as indented JSON, the format
// ImportSnapshot reads back.
func (r *Repository) ExportSnapshot(ctx context.Context) ([]byte, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ExportYAML serializes the same envelope as YAML for reading by hand.
func (r *Repository) ExportYAML(ctx context.Context) ([]byte, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportSnapshot replaces the library and/or settings with the contents of
// an exported envelope. Slots absent from the envelope are left untouched.
func (r *Repository) ImportSnapshot(ctx context.Context, data []byte) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.importSnapshot(ctx, data); err != nil {
		return err
	}
	r.bus.Publish(events.DataImported, events.Imported{})
	return nil
}

func (r *Repository) importSnapshot(ctx context.Context, data []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil || envelope == nil {
		return fmt.Errorf("%w: import must be a JSON object", ErrMalformedData)
	}

	if raw, ok := present(envelope, "version"); ok {
		var version string
		if err := json.Unmarshal(raw, &version); err != nil {
			return fmt.Errorf("%w: version must be a string", ErrMalformedData)
		}
		if major, _, _ := strings.Cut(version, "."); major != "1" {
			return fmt.Errorf("%w: unsupported version %q", ErrMalformedData, version)
		}
	}

	rawLibrary, hasLibrary := present(envelope, "library")
	rawSettings, hasSettings := present(envelope, "settings")
	if !hasLibrary && !hasSettings {
		return fmt.Errorf("%w: import has neither library nor settings", ErrMalformedData)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	var (
		books    []entities.Book
		settings entities.Settings
		err      error
	)
	if hasLibrary {
		if books, err = r.parseImportedBooks(rawLibrary); err != nil {
			return err
		}
	}
	if hasSettings {
		settings = entities.DefaultSettings()
		if err := json.Unmarshal(rawSettings, &settings); err != nil {
			return fmt.Errorf("%w: settings: %v", ErrMalformedData, err)
		}
		if reason := settings.Validate(); reason != "" {
			return fmt.Errorf("%w: settings: %s", ErrMalformedData, reason)
		}
	}

	if hasLibrary {
		if err := r.persistBooks(ctx, books); err != nil {
			return err
		}
	}
	if hasSettings {
		if err := r.persistSettings(ctx, settings); err != nil {
			if hasLibrary {
				if rbErr := r.persistBooks(ctx, r.books); rbErr != nil {
					log.Printf("Failed to restore library after aborted import: %v", rbErr)
				}
			}
			return err
		}
	}

	if hasLibrary {
		r.books = books
	}
	if hasSettings {
		r.settings = settings
	}
	return nil
}

func (r *Repository) parseImportedBooks(raw json.RawMessage) ([]entities.Book, error) {
	var books []entities.Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("%w: library: %v", ErrMalformedData, err)
	}
	if books == nil {
		books = []entities.Book{}
	}

	now := r.now()
	seen := make(map[string]struct{}, len(books))
	for i := range books {
		b := &books[i]
		if strings.TrimSpace(b.ID) == "" {
			return nil, fmt.Errorf("%w: book %d has no id", ErrMalformedData, i)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate book id %q", ErrMalformedData, b.ID)
		}
		seen[b.ID] = struct{}{}

		if strings.TrimSpace(b.Title) == "" {
			return nil, fmt.Errorf("%w: book %q has no title", ErrMalformedData, b.ID)
		}
		status, ok := entities.ParseStatus(string(b.Status))
		if !ok {
			return nil, fmt.Errorf("%w: book %q has status %q", ErrMalformedData, b.ID, b.Status)
		}
		b.Status = status
		if !b.Category.Valid() {
			return nil, fmt.Errorf("%w: book %q has category %q", ErrMalformedData, b.ID, b.Category)
		}
		if b.Pages < 0 {
			return nil, fmt.Errorf("%w: book %q has negative pages", ErrMalformedData, b.ID)
		}
		if strings.TrimSpace(b.Author) == "" {
			b.Author = entities.UnknownAuthor
		}
		if b.AddedDate.IsZero() {
			b.AddedDate = now
		}
		if b.LastUpdated.IsZero() || b.LastUpdated.Before(b.AddedDate) {
			b.LastUpdated = b.AddedDate
		}
	}
	return books, nil
}

// present returns the raw value of key unless it is missing or JSON null.
func present(envelope map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := envelope[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return nil, false
	}
	return raw, true
}
