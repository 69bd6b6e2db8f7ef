package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/site-admin-api/internal/middleware"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/require"
)

// newTestApp mounts one handler behind the body parser and mws.
func newTestApp(method, path string, handler drift.HandlerFunc, mws ...drift.HandlerFunc) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	for _, mw := range mws {
		app.Use(mw)
	}

	switch method {
	case http.MethodPost:
		app.Post(path, handler)
	case http.MethodPut:
		app.Put(path, handler)
	default:
		app.Get(path, handler)
	}
	return app
}

// localAuth authenticates through the local admin cookie only.
func localAuth() drift.HandlerFunc {
	return middleware.Authenticate(services.NewAuthenticator(
		testTokenAuthority(), nil, nil, "sb-access-token", nil,
	))
}

// withIdentity injects identity directly, standing in for a federated session.
func withIdentity(identity *models.Identity) drift.HandlerFunc {
	return func(c *drift.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

func testTokenAuthority() *services.TokenAuthority {
	return services.NewTokenAuthority("test-secret-key-for-testing-only", services.AdminCredentials{
		Username: "ops@example.com",
		Password: "correct horse",
	})
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, _, err := testTokenAuthority().Issue("ops@example.com", "correct horse")
	require.NoError(t, err)
	return &http.Cookie{Name: services.LocalSessionCookie, Value: token}
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func requireAdmin() drift.HandlerFunc {
	return middleware.RequireRole(models.RoleAdmin)
}

func requireSuperAdmin() drift.HandlerFunc {
	return middleware.RequireRole(models.RoleSuperAdmin)
}
