package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/readvoyage/internal/backup"
	"github.com/mrlokans/readvoyage/internal/challenge"
	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/events"
	"github.com/mrlokans/readvoyage/internal/kvstore"
	"github.com/mrlokans/readvoyage/internal/library"
	"github.com/mrlokans/readvoyage/internal/search"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Config    *config.Config
	Store     kvstore.Store
	Bus       *events.Bus
	Library   *library.Repository
	Challenge *challenge.Service
	Search    *search.Gateway

	tracker *challenge.Tracker
}

// NewApp opens storage and loads the library. Close releases the store.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := kvstore.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	bus := events.NewBus()
	repo := library.NewRepository(store, bus)
	if err := repo.Initialize(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("load library: %w", err)
	}

	client := search.NewClient(cfg.Search.BaseURL, cfg.Search.Timeout, cfg.Search.RateLimit)
	gateway, err := search.NewGateway(client, cfg.Search.Limit, cfg.Search.CacheSize)
	if err != nil {
		store.Close()
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Store:     store,
		Bus:       bus,
		Library:   repo,
		Challenge: challenge.NewService(store),
		Search:    gateway,
	}

	if cfg.Challenge.AutoTrack {
		app.tracker, err = challenge.AutoTrack(ctx, app.Challenge, repo)
		if err != nil {
			// The library is usable without the challenge counter.
			log.Printf("WARNING: reading challenge auto-tracking disabled: %v", err)
		}
	}
	return app, nil
}

// BackupSinks builds the configured snapshot destinations: the local
// directory always, and the S3 bucket when an endpoint is set.
func (a *App) BackupSinks() ([]backup.Sink, error) {
	cfg := a.Config.Backup
	sinks := []backup.Sink{backup.NewDirSink(cfg.Dir, cfg.Keep)}

	if cfg.S3Endpoint != "" {
		s3, err := backup.NewMinioSink(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
		if err != nil {
			return nil, fmt.Errorf("backup bucket: %w", err)
		}
		sinks = append(sinks, s3)
	}
	return sinks, nil
}

// NewBackupScheduler returns a scheduler over BackupSinks. It is not started.
func (a *App) NewBackupScheduler() (*backup.Scheduler, error) {
	sinks, err := a.BackupSinks()
	if err != nil {
		return nil, err
	}
	return backup.NewScheduler(a.Library, a.Config.Backup.Schedule, sinks...), nil
}

func (a *App) Close() error {
	if a.tracker != nil {
		a.tracker.Stop()
	}
	return a.Store.Close()
}
