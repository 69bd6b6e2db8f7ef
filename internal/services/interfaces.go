package services

import (
	"context"

	"github.com/dimitrije/site-admin-api/internal/federated"
	"github.com/dimitrije/site-admin-api/internal/models"
)

// SettingsRepository is the override store consumed by SettingsResolver.
type SettingsRepository interface {
	Configured() bool
	List(ctx context.Context) ([]models.SiteSetting, error)
	Get(ctx context.Context, key string) (string, bool, error)
	Upsert(ctx context.Context, key, value string) error
}

// SettingsCache holds a recently resolved settings map. Implementations
// swallow their own errors; a miss is always safe.
type SettingsCache interface {
	Get(ctx context.Context) (models.SettingsMap, bool)
	Set(ctx context.Context, settings models.SettingsMap)
	Invalidate(ctx context.Context)
}

// ProfileRepository is the admin_profiles side of the credential store.
type ProfileRepository interface {
	Configured() bool
	GetByID(ctx context.Context, id string) (*models.AdminProfile, error)
	List(ctx context.Context) ([]models.AdminProfile, error)
	Upsert(ctx context.Context, profile *models.AdminProfile) (*models.AdminProfile, error)
}

// LocalVerifier verifies the self-issued admin session token.
type LocalVerifier interface {
	Verify(token string) (*models.Identity, error)
}

// Inviter asks the external identity provider to invite a new user and
// returns the subject id it assigned.
type Inviter interface {
	Configured() bool
	InviteUserByEmail(ctx context.Context, email string, metadata map[string]any) (*federated.InvitedUser, error)
}
