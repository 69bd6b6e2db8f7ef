package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/middleware"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/dimitrije/site-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AdminHandler struct {
	invites  InviteServiceInterface
	profiles ProfileServiceInterface
	logger   *slog.Logger
}

func NewAdminHandler(invites InviteServiceInterface, profiles ProfileServiceInterface, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{invites: invites, profiles: profiles, logger: logger}
}

func (h *AdminHandler) Invite(c *drift.Context) {
	var req dto.InviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	userID, err := h.invites.Invite(c.Request.Context(), middleware.GetIdentity(c), services.InviteRequest{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        models.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.InviteResponse{UserID: userID})
}

func (h *AdminHandler) List(c *drift.Context) {
	if !h.profiles.Configured() {
		respondError(c, h.logger, services.ErrNotConfigured)
		return
	}

	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]dto.AdminResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, dto.AdminResponse{
			ID:          p.ID,
			Email:       p.Email,
			DisplayName: p.Name(),
			Role:        string(p.Role),
			CreatedAt:   p.CreatedAt,
		})
	}

	_ = c.JSON(http.StatusOK, resp)
}
