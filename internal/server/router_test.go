package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/internal/handlers"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/dimitrije/site-admin-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memorySettings struct {
	rows map[string]string
	fail map[string]bool
}

func (m *memorySettings) Configured() bool { return true }

func (m *memorySettings) List(context.Context) ([]models.SiteSetting, error) {
	out := make([]models.SiteSetting, 0, len(m.rows))
	for k, v := range m.rows {
		out = append(out, models.SiteSetting{Key: k, Value: v})
	}
	return out, nil
}

func (m *memorySettings) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.rows[key]
	return v, ok, nil
}

func (m *memorySettings) Upsert(_ context.Context, key, value string) error {
	if m.fail[key] {
		return errors.New("rejected by store")
	}
	m.rows[key] = value
	return nil
}

type flakySource struct{}

func (flakySource) Configured() bool { return true }

func (flakySource) Query(_ context.Context, hogql string) ([][]any, error) {
	switch {
	case strings.Contains(hogql, "$browser"), strings.Contains(hogql, "DISTINCT"):
		return nil, errors.New("upstream timeout")
	case strings.Contains(hogql, "GROUP BY"):
		return [][]any{{"/", float64(3)}}, nil
	default:
		return [][]any{{float64(42)}}, nil
	}
}

type testServer struct {
	client   *testutil.HTTPTestClient
	settings *memorySettings
	invites  *testutil.MockInviteService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := testutil.TestTokenAuthority()
	settings := &memorySettings{rows: map[string]string{}, fail: map[string]bool{"bogus_key": true}}
	invites := new(testutil.MockInviteService)
	profiles := new(testutil.MockProfileService)
	profiles.On("Configured").Return(true).Maybe()
	profiles.On("List", mock.Anything).Return([]models.AdminProfile{}, nil).Maybe()

	router := NewRouter(Options{
		Logger:        logger,
		Authenticator: services.NewAuthenticator(tokens, nil, nil, "sb-access-token", logger),
	}, Handlers{
		Auth:      handlers.NewAuthHandler(tokens, false, logger),
		Settings:  handlers.NewSettingsHandler(services.NewSettingsResolver(settings, nil, logger), logger),
		Admin:     handlers.NewAdminHandler(invites, profiles, logger),
		Analytics: handlers.NewAnalyticsHandler(analytics.NewAggregator(flakySource{}, logger), logger),
	})

	return &testServer{
		client:   testutil.NewHTTPTestClient(t, router),
		settings: settings,
		invites:  invites,
	}
}

func (s *testServer) asAdmin(t *testing.T) *testutil.HTTPTestClient {
	return s.client.WithCookie(testutil.SessionCookie(testutil.GenerateTestToken(t)))
}

func TestRouter_Health(t *testing.T) {
	s := setupServer(t)

	rec := s.client.GET("/api/health", nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestRouter_LoginThenVerify(t *testing.T) {
	s := setupServer(t)

	rec := s.client.POST("/api/admin/login", map[string]string{
		"username": testutil.TestAdminUsername,
		"password": testutil.TestAdminPassword,
	}, nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	rec = s.client.WithCookie(cookies[0]).GET("/api/admin/verify", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `"method":"local"`)

	rec = s.client.GET("/api/admin/verify", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestRouter_PublicSettingsSkipAuth(t *testing.T) {
	s := setupServer(t)
	s.settings.rows["contact_phone"] = "+91 99999 11111"

	rec := s.client.GET("/api/settings", nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "+91 99999 11111")
}

func TestRouter_PutSettingsPartialFailure(t *testing.T) {
	s := setupServer(t)

	rec := s.asAdmin(t).PUT("/api/admin/settings", map[string]string{
		"contact_phone": "+91 99999 11111",
		"bogus_key":     "x",
	}, nil)

	testutil.AssertStatus(t, rec, http.StatusInternalServerError)
	assert.Contains(t, rec.Body.String(), "bogus_key")
	assert.NotContains(t, rec.Body.String(), "contact_phone")
	assert.Equal(t, "+91 99999 11111", s.settings.rows["contact_phone"])
}

func TestRouter_PutSettingsRequiresSession(t *testing.T) {
	s := setupServer(t)

	rec := s.client.PUT("/api/admin/settings", map[string]string{"site_name": "x"}, nil)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	assert.Empty(t, s.settings.rows)
}

func TestRouter_InviteByAdminIsForbidden(t *testing.T) {
	s := setupServer(t)

	rec := s.asAdmin(t).POST("/api/admin/invite", map[string]string{"email": "new@example.com"}, nil)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	s.invites.AssertNotCalled(t, "Invite", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_AnalyticsPartialFailure(t *testing.T) {
	s := setupServer(t)

	rec := s.asAdmin(t).GET("/api/admin/analytics?dateFrom=-30d", nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body map[string]any
	testutil.ParseJSON(t, rec, &body)
	assert.Nil(t, body["visitors"])
	assert.Nil(t, body["browsers"])
	assert.EqualValues(t, 42, body["pageViews"])
	assert.NotNil(t, body["topPages"])
	assert.NotNil(t, body["devices"])
	assert.NotNil(t, body["geography"])
}

func TestRouter_AdminsList(t *testing.T) {
	s := setupServer(t)

	rec := s.asAdmin(t).GET("/api/admin/admins", nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
