package http

import (
	"context"

	"github.com/mrlokans/readvoyage/internal/challenge"
	"github.com/mrlokans/readvoyage/internal/covers"
	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/kvstore"
	"github.com/mrlokans/readvoyage/internal/library"
	"github.com/mrlokans/readvoyage/internal/tasks"
)

// BookFinder is the catalog search used by SearchController.
// search.Gateway implements it.
type BookFinder interface {
	Find(ctx context.Context, query string) ([]entities.SearchResult, string)
	FindAuthors(ctx context.Context, query string) ([]entities.AuthorResult, string)
}

// BackupRunner takes an on-demand snapshot. backup.Scheduler implements it.
type BackupRunner interface {
	RunOnce(ctx context.Context) (string, error)
}

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional dependencies disable their routes when nil.
type RouterConfig struct {
	// Core dependencies
	Library   *library.Repository
	Challenge *challenge.Service
	Bus       *events.Bus
	Store     kvstore.Store

	// Catalog search
	Finder BookFinder

	// Cover caching
	CoverCache *covers.Cache

	// Task queue client
	TaskClient *tasks.Client

	// On-demand backups
	Backup BackupRunner

	// Application info
	Version string
}
