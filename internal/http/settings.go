package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/library"
)

type SettingsController struct {
	repo *library.Repository
}

func NewSettingsController(repo *library.Repository) *SettingsController {
	return &SettingsController{repo: repo}
}

// GetSettings handles GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.repo.GetSettings(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "get settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/settings with a partial settings object.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var patch entities.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	settings, err := sc.repo.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		respondDomainError(c, err, "update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
