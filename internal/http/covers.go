package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/covers"
	"github.com/mrlokans/readvoyage/internal/library"
	"github.com/mrlokans/readvoyage/internal/search"
)

// CoversController handles book cover requests.
type CoversController struct {
	cache    *covers.Cache
	repo     *library.Repository
	coverURL func(coverID, size string) string
}

// NewCoversController creates a new CoversController.
func NewCoversController(cache *covers.Cache, repo *library.Repository) *CoversController {
	return &CoversController{
		cache:    cache,
		repo:     repo,
		coverURL: search.CoverURL,
	}
}

// GetCover serves a cached book cover image.
// GET /covers/:id?size=S|M|L
func (cc *CoversController) GetCover(c *gin.Context) {
	book, err := cc.repo.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err, "get cover")
		return
	}

	if book.CoverID == "" {
		respondNotFound(c, "cover")
		return
	}
	coverURL := cc.coverURL(book.CoverID, c.DefaultQuery("size", "M"))

	// Get cached cover (will fetch if not cached)
	cachePath, err := cc.cache.GetCover(c.Request.Context(), book.ID, coverURL)
	if err != nil || cachePath == "" {
		// Fallback: redirect to original URL
		c.Redirect(http.StatusTemporaryRedirect, coverURL)
		return
	}

	c.File(cachePath)
}
