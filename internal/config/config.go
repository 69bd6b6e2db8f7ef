package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
	RedisURL    string

	AllowOrigins []string

	SessionSecret string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	SettingsCacheTTL time.Duration

	Federated FederatedConfig
	Analytics AnalyticsConfig
}

// FederatedConfig describes the external identity provider whose sessions are
// accepted alongside the local admin token.
type FederatedConfig struct {
	// Mode is "gotrue" (HS256 access tokens signed with JWTSecret) or "oidc".
	Mode       string
	CookieName string

	URL            string
	ServiceKey     string
	JWTSecret      string
	InviteRedirect string

	IssuerURL string
	ClientID  string

	Timeout time.Duration
}

type AnalyticsConfig struct {
	Host      string
	ProjectID string
	APIKey    string
	Timeout   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cacheTTL, err := time.ParseDuration(getEnv("SETTINGS_CACHE_TTL", "60s"))
	if err != nil {
		cacheTTL = 60 * time.Second
	}

	analyticsTimeout, err := time.ParseDuration(getEnv("ANALYTICS_TIMEOUT", "10s"))
	if err != nil || analyticsTimeout <= 0 {
		analyticsTimeout = 10 * time.Second
	}

	federatedTimeout, err := time.ParseDuration(getEnv("FEDERATED_TIMEOUT", "10s"))
	if err != nil || federatedTimeout <= 0 {
		federatedTimeout = 10 * time.Second
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),

		SessionSecret: getEnvOrPanic("SESSION_SECRET"),

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SettingsCacheTTL: cacheTTL,

		Federated: FederatedConfig{
			Mode:           getEnv("FEDERATED_MODE", "gotrue"),
			CookieName:     getEnv("FEDERATED_COOKIE_NAME", "sb-access-token"),
			URL:            getEnv("FEDERATED_URL", ""),
			ServiceKey:     getEnv("FEDERATED_SERVICE_KEY", ""),
			JWTSecret:      getEnv("FEDERATED_JWT_SECRET", ""),
			InviteRedirect: getEnv("FEDERATED_INVITE_REDIRECT", ""),
			IssuerURL:      getEnv("FEDERATED_ISSUER_URL", ""),
			ClientID:       getEnv("FEDERATED_CLIENT_ID", ""),
			Timeout:        federatedTimeout,
		},

		Analytics: AnalyticsConfig{
			Host:      getEnv("ANALYTICS_HOST", "https://us.posthog.com"),
			ProjectID: getEnv("ANALYTICS_PROJECT_ID", ""),
			APIKey:    getEnv("ANALYTICS_API_KEY", ""),
			Timeout:   analyticsTimeout,
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
