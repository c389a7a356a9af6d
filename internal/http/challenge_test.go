package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readvoyage/internal/entities"
)

func TestChallengeAPI(t *testing.T) {
	app := setupApp(t)

	w := app.do("GET", "/api/challenge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[ChallengeResponse](t, w)
	assert.Equal(t, entities.DefaultChallengeTarget, got.Target)
	assert.Equal(t, 0, got.BooksRead)
	assert.Equal(t, float64(0), got.Progress)
	assert.NotEmpty(t, got.Motivation)

	w = app.do("PUT", "/api/challenge", map[string]any{"target": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, decode[ChallengeResponse](t, w).Target)

	w = app.do("POST", "/api/challenge/increment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[ChallengeResponse](t, w)
	assert.Equal(t, 1, got.BooksRead)
	assert.Equal(t, float64(10), got.Progress)
	assert.Equal(t, 9, got.Remaining)

	w = app.do("PUT", "/api/challenge", map[string]any{"booksRead": 15})
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[ChallengeResponse](t, w)
	assert.Equal(t, float64(100), got.Progress)
	assert.Equal(t, 0, got.Remaining)
}

func TestChallengeAPI_InvalidValues(t *testing.T) {
	app := setupApp(t)

	for name, body := range map[string]any{
		"zero target":        map[string]any{"target": 0},
		"negative booksRead": map[string]any{"booksRead": -1},
		"empty body":         map[string]any{},
		"not json":           "nope",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, app.do("PUT", "/api/challenge", body).Code)
		})
	}
}
