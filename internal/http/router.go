package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Store, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Library
	books := NewBooksController(cfg.Library)
	api.GET("/books", books.ListBooks)
	api.POST("/books", books.AddBook)
	api.DELETE("/books", books.ClearLibrary)
	api.GET("/books/:id", books.GetBook)
	api.PATCH("/books/:id", books.UpdateBook)
	api.DELETE("/books/:id", books.DeleteBook)
	api.GET("/stats", books.GetStats)

	settings := NewSettingsController(cfg.Library)
	api.GET("/settings", settings.GetSettings)
	api.PATCH("/settings", settings.UpdateSettings)

	snapshots := NewSnapshotController(cfg.Library)
	api.GET("/export", snapshots.Export)
	api.POST("/import", snapshots.Import)

	if cfg.Finder != nil {
		search := NewSearchController(cfg.Finder, cfg.Library)
		api.GET("/search", search.Search)
		api.POST("/search/add", search.AddResult)
	}

	if cfg.Challenge != nil {
		challenge := NewChallengeController(cfg.Challenge)
		api.GET("/challenge", challenge.Get)
		api.PUT("/challenge", challenge.Update)
		api.POST("/challenge/increment", challenge.Increment)
	}

	if cfg.Bus != nil {
		stream := NewEventsController(cfg.Bus)
		api.GET("/events", stream.Stream)
	}

	if cfg.CoverCache != nil {
		covers := NewCoversController(cfg.CoverCache, cfg.Library)
		router.GET("/covers/:id", covers.GetCover)
	}

	if cfg.TaskClient != nil || cfg.Backup != nil {
		tasks := NewTasksController(cfg.TaskClient, cfg.Backup)
		if cfg.Backup != nil {
			api.POST("/backup", tasks.Backup)
		}
		if cfg.TaskClient != nil {
			api.GET("/tasks/:id", tasks.GetTaskStatus)
		}
	}

	return router
}
