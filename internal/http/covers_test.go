package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/covers"
	"github.com/mrlokans/readvoyage/internal/entities"
)

func TestCoversController_GetCover(t *testing.T) {
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = io.WriteString(w, "fake image data")
	}))
	defer images.Close()

	app := setupApp(t)
	cache, err := covers.NewCache(t.TempDir())
	require.NoError(t, err)

	controller := NewCoversController(cache, app.repo)
	controller.coverURL = func(coverID, size string) string {
		return images.URL + "/" + coverID + "-" + size + ".jpg"
	}
	router := gin.New()
	router.GET("/covers/:id", controller.GetCover)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	withCover := app.addBook(t, entities.NewBook{Title: "Dune", CoverID: "11481354"})
	withoutCover := app.addBook(t, entities.NewBook{Title: "Emma"})
	brokenCover := app.addBook(t, entities.NewBook{Title: "Lost", CoverID: "missing"})

	t.Run("serves cached cover", func(t *testing.T) {
		w := get("/covers/" + withCover.ID)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fake image data", w.Body.String())
	})

	t.Run("book without cover", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/covers/"+withoutCover.ID).Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/covers/book_missing").Code)
	})

	t.Run("redirects when fetch fails", func(t *testing.T) {
		w := get("/covers/" + brokenCover.ID + "?size=L")
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, images.URL+"/missing-L.jpg", w.Header().Get("Location"))
	})
}
