package middleware

import (
	"context"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	IdentityKey   = "identity"
	AuthStatusKey = "auth_status"
)

type SessionAuthenticator interface {
	Authenticate(ctx context.Context, r *http.Request) services.AuthResult
}

// Authenticate resolves the caller's session and stores the result on the
// context. It never rejects a request; see RequireRole.
func Authenticate(auth SessionAuthenticator) drift.HandlerFunc {
	return func(c *drift.Context) {
		result := auth.Authenticate(c.Request.Context(), c.Request)

		c.Set(AuthStatusKey, result.Status)
		if identity, ok := result.Identity(); ok {
			c.Set(IdentityKey, identity)
		}

		c.Next()
	}
}

// RequireRole rejects callers without a session (401) and callers whose role
// ranks below required (403). It must run after Authenticate.
func RequireRole(required models.Role) drift.HandlerFunc {
	return func(c *drift.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.Unauthorized("authentication required")
			return
		}

		if !models.Authorize(identity, required) {
			c.Forbidden("insufficient role")
			return
		}

		c.Next()
	}
}

func GetIdentity(c *drift.Context) *models.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if identity, ok := v.(*models.Identity); ok {
			return identity
		}
	}
	return nil
}

func GetAuthStatus(c *drift.Context) services.AuthStatus {
	if v, ok := c.Get(AuthStatusKey); ok {
		if status, ok := v.(services.AuthStatus); ok {
			return status
		}
	}
	return services.AuthUnauthenticated
}
