package entities

import (
	"strings"
	"time"
)

type ReadingStatus string

const (
	StatusUnread    ReadingStatus = "unread"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
)

// legacyStatusRead is written by older builds that tracked "read" instead of "completed".
const legacyStatusRead = "read"

func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus normalizes user input into a ReadingStatus.
// An empty string maps to StatusUnread.
func ParseStatus(raw string) (ReadingStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusUnread, true
	}
	if s == legacyStatusRead {
		return StatusCompleted, true
	}
	status := ReadingStatus(s)
	return status, status.Valid()
}

type Category string

const (
	CategoryFiction        Category = "fiction"
	CategoryNonFiction     Category = "non-fiction"
	CategoryScienceFiction Category = "science-fiction"
	CategoryFantasy        Category = "fantasy"
	CategoryMystery        Category = "mystery"
	CategoryRomance        Category = "romance"
	CategoryBiography      Category = "biography"
	CategoryHistory        Category = "history"
	CategorySelfHelp       Category = "self-help"
	CategoryOther          Category = "other"
)

var Categories = []Category{
	CategoryFiction,
	CategoryNonFiction,
	CategoryScienceFiction,
	CategoryFantasy,
	CategoryMystery,
	CategoryRomance,
	CategoryBiography,
	CategoryHistory,
	CategorySelfHelp,
	CategoryOther,
}

// Valid reports whether c is empty (no category) or one of Categories.
func (c Category) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const UnknownAuthor = "Unknown"

// Book is one title tracked in the library. Field names double as the
// persisted and exported JSON layout.
type Book struct {
	ID               string        `json:"id" yaml:"id"`
	Title            string        `json:"title" yaml:"title"`
	Author           string        `json:"author" yaml:"author"`
	Status           ReadingStatus `json:"status" yaml:"status"`
	Category         Category      `json:"category,omitempty" yaml:"category,omitempty"`
	Pages            int           `json:"pages,omitempty" yaml:"pages,omitempty"`
	CoverID          string        `json:"coverId,omitempty" yaml:"coverId,omitempty"`
	Description      string        `json:"description,omitempty" yaml:"description,omitempty"`
	FirstPublishYear int           `json:"firstPublishYear,omitempty" yaml:"firstPublishYear,omitempty"`
	Subjects         []string      `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	AddedDate        time.Time     `json:"addedDate" yaml:"addedDate"`
	LastUpdated      time.Time     `json:"lastUpdated" yaml:"lastUpdated"`
}

// Clone returns a deep copy so callers cannot mutate repository state through slices.
func (b Book) Clone() Book {
	if b.Subjects != nil {
		b.Subjects = append([]string(nil), b.Subjects...)
	}
	return b
}

// NewBook carries the caller-supplied fields of a book being added.
type NewBook struct {
	Title            string        `json:"title"`
	Author           string        `json:"author"`
	Status           ReadingStatus `json:"status,omitempty"`
	Category         Category      `json:"category,omitempty"`
	Pages            int           `json:"pages,omitempty"`
	CoverID          string        `json:"coverId,omitempty"`
	Description      string        `json:"description,omitempty"`
	FirstPublishYear int           `json:"firstPublishYear,omitempty"`
	Subjects         []string      `json:"subjects,omitempty"`
}

// BookPatch is a partial update. Nil fields are left unchanged.
type BookPatch struct {
	Title            *string        `json:"title,omitempty"`
	Author           *string        `json:"author,omitempty"`
	Status           *ReadingStatus `json:"status,omitempty"`
	Category         *Category      `json:"category,omitempty"`
	Pages            *int           `json:"pages,omitempty"`
	CoverID          *string        `json:"coverId,omitempty"`
	Description      *string        `json:"description,omitempty"`
	FirstPublishYear *int           `json:"firstPublishYear,omitempty"`
	Subjects         []string       `json:"subjects,omitempty"`
}

// Apply merges the patch over b and returns the result. b is not modified.
func (p BookPatch) Apply(b Book) Book {
	out := b.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Author != nil {
		out.Author = strings.TrimSpace(*p.Author)
		if out.Author == "" {
			out.Author = UnknownAuthor
		}
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Pages != nil {
		out.Pages = *p.Pages
	}
	if p.CoverID != nil {
		out.CoverID = *p.CoverID
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.FirstPublishYear != nil {
		out.FirstPublishYear = *p.FirstPublishYear
	}
	if p.Subjects != nil {
		out.Subjects = append([]string(nil), p.Subjects...)
	}
	return out
}

type LibraryStats struct {
	Total     int `json:"total"`
	Reading   int `json:"reading"`
	Completed int `json:"completed"`
	Unread    int `json:"unread"`
}
