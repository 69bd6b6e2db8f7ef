package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/site-admin-api/internal/database"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// ProfileOption customizes a fixture profile
type ProfileOption func(*models.AdminProfile)

func WithRole(role models.Role) ProfileOption {
	return func(p *models.AdminProfile) { p.Role = role }
}

func WithEmail(email string) ProfileOption {
	return func(p *models.AdminProfile) { p.Email = email }
}

// CreateProfile inserts an admin profile keyed by a random subject id
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.AdminProfile {
	t.Helper()
	f.counter++

	profile := &models.AdminProfile{
		ID:    uuid.NewString(),
		Email: fmt.Sprintf("admin%d@example.com", f.counter),
		Role:  models.RoleAdmin,
	}
	for _, opt := range opts {
		opt(profile)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO admin_profiles (id, email, display_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, profile.ID, profile.Email, profile.DisplayName, string(profile.Role)).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return profile
}

// SetSetting stores an override row
func (f *Fixtures) SetSetting(t *testing.T, key, value string) {
	t.Helper()
	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO site_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		t.Fatalf("failed to set setting %s: %v", key, err)
	}
}
