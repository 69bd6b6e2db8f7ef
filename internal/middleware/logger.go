package middleware

import (
	"log/slog"
	"time"

	"github.com/dimitrije/site-admin-api/internal/logging"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with an id and logs each request
// once it has been handled. An incoming X-Request-ID is reused.
func RequestLogger(logger *slog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Response.Header().Set(RequestIDHeader, id)

		c.Next()

		logger.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
