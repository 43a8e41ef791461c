package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/services"
)

type SettingsHandler struct {
	SettingsService *services.SettingsService
}

func NewSettingsHandler(s *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{SettingsService: s}
}

// GetEmailSettings is GET /email/settings
func (h *SettingsHandler) GetEmailSettings(c *gin.Context) {
	settings, err := h.SettingsService.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "Failed to load email settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveEmailSettings is POST /email/settings
func (h *SettingsHandler) SaveEmailSettings(c *gin.Context) {
	var req dtos.EmailSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.SettingsService.Save(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err, "Failed to save email settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
