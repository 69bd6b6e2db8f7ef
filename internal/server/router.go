// Package server wires handlers and middleware into the drift router.
package server

import (
	"log/slog"
	"net/http"

	"github.com/dimitrije/site-admin-api/internal/handlers"
	authmw "github.com/dimitrije/site-admin-api/internal/middleware"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

type Options struct {
	Production    bool
	AllowOrigins  []string
	Logger        *slog.Logger
	Authenticator authmw.SessionAuthenticator
}

type Handlers struct {
	Auth      *handlers.AuthHandler
	Settings  *handlers.SettingsHandler
	Admin     *handlers.AdminHandler
	Analytics *handlers.AnalyticsHandler
}

func NewRouter(opts Options, h Handlers) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	app := drift.New()

	if opts.Production {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	app.Use(middleware.Recovery())
	app.Use(authmw.RequestLogger(opts.Logger))
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})
	api.Get("/settings", h.Settings.Get)

	admin := api.Group("/admin")
	admin.Use(authmw.Authenticate(opts.Authenticator))

	admin.Post("/login", h.Auth.Login)
	admin.Post("/logout", h.Auth.Logout)
	admin.Get("/verify", h.Auth.Verify)

	protected := admin.Group("")
	protected.Use(authmw.RequireRole(models.RoleAdmin))

	protected.Put("/settings", h.Settings.Put)
	protected.Get("/analytics", h.Analytics.Get)
	protected.Get("/admins", h.Admin.List)

	owners := admin.Group("")
	owners.Use(authmw.RequireRole(models.RoleSuperAdmin))

	owners.Post("/invite", h.Admin.Invite)

	return app
}
