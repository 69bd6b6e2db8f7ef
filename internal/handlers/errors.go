package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/dimitrije/site-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// respondError maps a service error to a status code. Partial failures and
// upstream errors carry their detail; anything unexpected is logged and
// reported generically.
func respondError(c *drift.Context, logger *slog.Logger, err error) {
	var partial *services.PartialFailureError

	switch {
	case errors.As(err, &partial):
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: partial.Error()})
	case errors.Is(err, services.ErrValidation), errors.Is(err, analytics.ErrInvalidParams):
		c.BadRequest(err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrNotConfigured), errors.Is(err, analytics.ErrNotConfigured):
		_ = c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUpstream):
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		c.InternalServerError("internal server error")
	}
}
