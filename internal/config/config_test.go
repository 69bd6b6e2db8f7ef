package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.SessionSecret)
	assert.Equal(t, 60*time.Second, cfg.SettingsCacheTTL)
	assert.Equal(t, "gotrue", cfg.Federated.Mode)
	assert.Equal(t, "sb-access-token", cfg.Federated.CookieName)
	assert.Equal(t, 10*time.Second, cfg.Analytics.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("ENV", "production")
	t.Setenv("ANALYTICS_TIMEOUT", "-5s")
	t.Setenv("FEDERATED_MODE", "oidc")
	t.Setenv("ANALYTICS_PROJECT_ID", "42")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10*time.Second, cfg.Analytics.Timeout)
	assert.Equal(t, "oidc", cfg.Federated.Mode)
	assert.Equal(t, "42", cfg.Analytics.ProjectID)
}

func TestLoad_MissingSecretPanics(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	assert.Panics(t, func() { _, _ = Load() })
}

func TestLoad_AllowOrigins(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://example.com, https://admin.example.com,")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "https://admin.example.com"}, cfg.AllowOrigins)
}
