package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/config"
	"github.com/mrlokans/readvoyage/internal/covers"
	"github.com/mrlokans/readvoyage/internal/events"
	http_controllers "github.com/mrlokans/readvoyage/internal/http"
	"github.com/mrlokans/readvoyage/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop the task queue and backup schedule before the listener.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ReadVoyage v%s", version)

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	coverCache, err := covers.NewCache(cfg.Covers.Dir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
		coverCache = nil
	} else {
		log.Printf("Cover cache initialized at %s", cfg.Covers.Dir)
	}

	// Interface values stay nil unless the component exists.
	var (
		backupRunner http_controllers.BackupRunner
		taskBackup   tasks.BackupRunner
		enqueuer     tasks.Enqueuer
	)

	if cfg.Backup.Enabled {
		scheduler, err := app.NewBackupScheduler()
		if err != nil {
			log.Printf("WARNING: backups disabled: %v", err)
		} else if err := scheduler.Start(bgCtx); err != nil {
			log.Printf("WARNING: backup schedule not started: %v", err)
		} else {
			backupRunner = scheduler
			taskBackup = scheduler
		}
	}

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.FromConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		var fetcher tasks.CoverFetcher
		if coverCache != nil {
			fetcher = coverCache
			enqueuer = taskClient
		}
		taskClient.Register(tasks.Queues(taskBackup, fetcher)...)
		go taskClient.Start(bgCtx)
	}

	if coverCache != nil {
		coverSync := tasks.NewCoverSync(enqueuer, coverCache)
		app.Bus.Subscribe(events.BooksUpdated, coverSync.HandleBooksUpdated)
		app.Bus.Subscribe(events.DataImported, coverSync.HandleDataImported)
	}

	routerCfg := http_controllers.RouterConfig{
		Library:    app.Library,
		Challenge:  app.Challenge,
		Bus:        app.Bus,
		Store:      app.Store,
		Finder:     app.Search,
		CoverCache: coverCache,
		TaskClient: taskClient,
		Backup:     backupRunner,
		Version:    version,
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
	}

	Serve(router, cfg, onShutdown)
}
