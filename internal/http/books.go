package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/library"
)

type BooksController struct {
	repo *library.Repository
}

func NewBooksController(repo *library.Repository) *BooksController {
	return &BooksController{
		repo: repo,
	}
}

// ListBooks handles GET /api/books
// Optional query parameters: status (unread|reading|completed) and q
// (case-insensitive title or author match).
func (controller *BooksController) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		books []entities.Book
		err   error
	)
	if raw := c.Query("status"); raw != "" {
		status, ok := entities.ParseStatus(raw)
		if !ok {
			respondBadRequest(c, "unknown status: "+raw)
			return
		}
		books, err = controller.repo.ListByStatus(ctx, status)
		books = library.MatchText(books, c.Query("q"))
	} else {
		books, err = controller.repo.SearchLibrary(ctx, c.Query("q"))
	}
	if err != nil {
		respondDomainError(c, err, "list books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.repo.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err, "get book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// AddBook handles POST /api/books
func (controller *BooksController) AddBook(c *gin.Context) {
	var req entities.NewBook
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := controller.repo.AddBook(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err, "add book")
		return
	}
	c.IndentedJSON(http.StatusCreated, book)
}

// UpdateBook handles PATCH /api/books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	var patch entities.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := controller.repo.UpdateBook(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondDomainError(c, err, "update book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	if err := controller.repo.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

// ClearLibrary handles DELETE /api/books
func (controller *BooksController) ClearLibrary(c *gin.Context) {
	if err := controller.repo.ClearLibrary(c.Request.Context()); err != nil {
		respondDomainError(c, err, "clear library")
		return
	}
	respondSuccess(c, "library cleared")
}

// GetStats handles GET /api/stats
func (controller *BooksController) GetStats(c *gin.Context) {
	stats, err := controller.repo.GetStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "stats")
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}
