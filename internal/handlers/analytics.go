package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AnalyticsHandler struct {
	aggregator AnalyticsServiceInterface
	logger     *slog.Logger
}

func NewAnalyticsHandler(aggregator AnalyticsServiceInterface, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{aggregator: aggregator, logger: logger}
}

// Get returns 200 even when some metrics failed; those slots are null.
func (h *AnalyticsHandler) Get(c *drift.Context) {
	params, err := analytics.ParseParams(c.QueryParam("dateFrom"), c.QueryParam("dateTo"))
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	result, err := h.aggregator.Aggregate(c.Request.Context(), params)
	if errors.Is(err, analytics.ErrNotConfigured) {
		_ = c.JSON(http.StatusServiceUnavailable, dto.AnalyticsUnavailableResponse{
			Configured: false,
			Error:      err.Error(),
		})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	_ = c.JSON(http.StatusOK, result)
}
