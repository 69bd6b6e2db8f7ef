package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/site-admin-api/internal/analytics"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
)

// TokenIssuerInterface defines the methods used by handlers from TokenAuthority
type TokenIssuerInterface interface {
	Issue(username, password string) (string, time.Time, error)
	TTL() time.Duration
}

// SettingsServiceInterface defines the methods used by handlers from SettingsResolver
type SettingsServiceInterface interface {
	GetAll(ctx context.Context) models.SettingsMap
	Put(ctx context.Context, updates map[string]string) error
}

// InviteServiceInterface defines the methods used by handlers from InviteService
type InviteServiceInterface interface {
	Invite(ctx context.Context, actor *models.Identity, req services.InviteRequest) (string, error)
}

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	Configured() bool
	List(ctx context.Context) ([]models.AdminProfile, error)
}

// AnalyticsServiceInterface defines the methods used by handlers from Aggregator
type AnalyticsServiceInterface interface {
	Aggregate(ctx context.Context, params analytics.QueryParams) (*models.AnalyticsResult, error)
}
