package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/library"
)

// SearchController queries the public catalog and adds results to the library.
type SearchController struct {
	finder BookFinder
	repo   *library.Repository
}

func NewSearchController(finder BookFinder, repo *library.Repository) *SearchController {
	return &SearchController{finder: finder, repo: repo}
}

// Search handles GET /api/search?q=...&type=books|authors
// Lookup failures are reported through the message field with a 200 status.
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")

	switch c.DefaultQuery("type", "books") {
	case "books":
		results, message := sc.finder.Find(c.Request.Context(), query)
		c.JSON(http.StatusOK, gin.H{"results": results, "message": message})
	case "authors":
		results, message := sc.finder.FindAuthors(c.Request.Context(), query)
		c.JSON(http.StatusOK, gin.H{"results": results, "message": message})
	default:
		respondBadRequest(c, "type must be books or authors")
	}
}

// AddResult handles POST /api/search/add with a search result as the body.
func (sc *SearchController) AddResult(c *gin.Context) {
	var result entities.SearchResult
	if err := c.ShouldBindJSON(&result); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := sc.repo.AddSearchResult(c.Request.Context(), result)
	if err != nil {
		respondDomainError(c, err, "add search result")
		return
	}
	c.JSON(http.StatusCreated, book)
}
