package testutil

import (
	"context"
	"time"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockSettingsService mocks the SettingsResolver
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetAll(ctx context.Context) models.SettingsMap {
	args := m.Called(ctx)
	return args.Get(0).(models.SettingsMap)
}

func (m *MockSettingsService) Put(ctx context.Context, updates map[string]string) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// MockInviteService mocks the InviteService
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) Invite(ctx context.Context, actor *models.Identity, req services.InviteRequest) (string, error) {
	args := m.Called(ctx, actor, req)
	return args.String(0), args.Error(1)
}

// MockProfileService mocks the ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProfileService) List(ctx context.Context) ([]models.AdminProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminProfile), args.Error(1)
}

// MockAnalyticsService mocks the analytics Aggregator
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Aggregate(ctx context.Context, params analytics.QueryParams) (*models.AnalyticsResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsResult), args.Error(1)
}

// MockTokenIssuer mocks the TokenAuthority
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(username, password string) (string, time.Time, error) {
	args := m.Called(username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) TTL() time.Duration {
	return services.DefaultSessionTTL
}
