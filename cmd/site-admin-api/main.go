package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/internal/cache"
	"github.com/dimitrije/site-admin-api/internal/config"
	"github.com/dimitrije/site-admin-api/internal/database"
	"github.com/dimitrije/site-admin-api/internal/federated"
	"github.com/dimitrije/site-admin-api/internal/handlers"
	"github.com/dimitrije/site-admin-api/internal/logging"
	"github.com/dimitrije/site-admin-api/internal/server"
	"github.com/dimitrije/site-admin-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.IsProduction(), cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	db := database.NewLazy(cfg.DatabaseURL)
	defer db.Close()

	if db.Configured() {
		if conn, err := db.Get(ctx); err != nil {
			logger.Warn("database unavailable, serving defaults", "error", err)
		} else if err := conn.Migrate(ctx); err != nil {
			logger.Warn("migrations failed, serving defaults", "error", err)
		}
	} else {
		logger.Warn("DATABASE_URL not set, settings and admin profiles are read-only defaults")
	}

	var settingsCache services.SettingsCache
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, settings cache disabled", "error", err)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		settingsCache = cache.NewSettingsCache(redisClient, cfg.SettingsCacheTTL, logger)
	}

	tokens := services.NewTokenAuthority(cfg.SessionSecret, services.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	})

	settingsResolver := services.NewSettingsResolver(services.NewSettingsStore(db), settingsCache, logger)
	profileService := services.NewProfileService(db)
	adminClient := federated.NewAdminClient(cfg.Federated.URL, cfg.Federated.ServiceKey, cfg.Federated.InviteRedirect, cfg.Federated.Timeout)
	inviteService := services.NewInviteService(adminClient, profileService, logger)
	authenticator := services.NewAuthenticator(tokens, federatedVerifier(cfg.Federated, logger), profileService, cfg.Federated.CookieName, logger)
	aggregator := analytics.NewAggregator(analytics.NewClient(cfg.Analytics), logger)

	router := server.NewRouter(server.Options{
		Production:    cfg.IsProduction(),
		AllowOrigins:  cfg.AllowOrigins,
		Logger:        logger,
		Authenticator: authenticator,
	}, server.Handlers{
		Auth:      handlers.NewAuthHandler(tokens, cfg.IsProduction(), logger),
		Settings:  handlers.NewSettingsHandler(settingsResolver, logger),
		Admin:     handlers.NewAdminHandler(inviteService, profileService, logger),
		Analytics: handlers.NewAnalyticsHandler(aggregator, logger),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func federatedVerifier(cfg config.FederatedConfig, logger *slog.Logger) federated.Verifier {
	switch cfg.Mode {
	case "oidc":
		if cfg.IssuerURL == "" || cfg.ClientID == "" {
			logger.Warn("federated OIDC mode without issuer or client id, federated sessions disabled")
			return federated.Disabled{}
		}
		return federated.NewOIDCVerifier(cfg.IssuerURL, cfg.ClientID, cfg.Timeout)
	case "gotrue", "":
		if cfg.JWTSecret == "" {
			logger.Warn("FEDERATED_JWT_SECRET not set, federated sessions disabled")
			return federated.Disabled{}
		}
		return federated.NewGoTrueVerifier(cfg.JWTSecret)
	default:
		logger.Warn("unknown federated mode, federated sessions disabled", "mode", cfg.Mode)
		return federated.Disabled{}
	}
}
