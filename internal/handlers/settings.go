package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/middleware"
	"github.com/dimitrije/site-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const settingsMaxAge = 60

type SettingsHandler struct {
	settings SettingsServiceInterface
	logger   *slog.Logger
}

func NewSettingsHandler(settings SettingsServiceInterface, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{settings: settings, logger: logger}
}

// Get is public and always succeeds; an unavailable store yields defaults.
func (h *SettingsHandler) Get(c *drift.Context) {
	settings := h.settings.GetAll(c.Request.Context())

	c.Response.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", settingsMaxAge))
	_ = c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Put(c *drift.Context) {
	var updates map[string]string
	if err := c.BindJSON(&updates); err != nil {
		c.BadRequest("request body must be an object of string values")
		return
	}

	if err := h.settings.Put(c.Request.Context(), updates); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if actor := middleware.GetIdentity(c); actor != nil {
		h.logger.InfoContext(c.Request.Context(), "settings updated", "by", actor.Email, "keys", len(updates))
	}

	_ = c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
