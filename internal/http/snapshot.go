package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/library"
)

// maxImportBytes bounds the request body accepted by Import.
const maxImportBytes = 10 << 20

type SnapshotController struct {
	repo *library.Repository
	now  func() time.Time
}

func NewSnapshotController(repo *library.Repository) *SnapshotController {
	return &SnapshotController{repo: repo, now: time.Now}
}

// Export handles GET /api/export?format=json|yaml
// The response is sent as a download named after the current date.
func (sc *SnapshotController) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "json":
		data, err = sc.repo.ExportSnapshot(c.Request.Context())
		contentType = "application/json"
	case "yaml", "yml":
		format = "yaml"
		data, err = sc.repo.ExportYAML(c.Request.Context())
		contentType = "application/yaml"
	default:
		respondBadRequest(c, "format must be json or yaml")
		return
	}
	if err != nil {
		respondDomainError(c, err, "export")
		return
	}

	filename := fmt.Sprintf("readvoyage-export-%s.%s", sc.now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// Import handles POST /api/import with an export envelope as the body.
func (sc *SnapshotController) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}
	if len(data) > maxImportBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "import file too large"})
		return
	}

	if err := sc.repo.ImportSnapshot(c.Request.Context(), data); err != nil {
		respondDomainError(c, err, "import")
		return
	}

	books, err := sc.repo.ListBooks(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "import")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "import complete",
		Data:    gin.H{"books": len(books)},
	})
}
