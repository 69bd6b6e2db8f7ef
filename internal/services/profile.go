package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/site-admin-api/internal/database"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// ProfileService reads and writes admin_profiles rows keyed by the federated
// subject id.
type ProfileService struct {
	db *database.Lazy
}

func NewProfileService(db *database.Lazy) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Configured() bool {
	return s.db.Configured()
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.AdminProfile, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var p models.AdminProfile
	var role string
	err = db.Pool.QueryRow(ctx, `
		SELECT id, email, display_name, role, created_at, updated_at
		FROM admin_profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &p.DisplayName, &role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin profile: %w", err)
	}

	p.Role = models.ParseRole(role)
	return &p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]models.AdminProfile, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, email, display_name, role, created_at, updated_at
		FROM admin_profiles
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.AdminProfile{}
	for rows.Next() {
		var p models.AdminProfile
		var role string
		if err := rows.Scan(&p.ID, &p.Email, &p.DisplayName, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin profile: %w", err)
		}
		p.Role = models.ParseRole(role)
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (s *ProfileService) Upsert(ctx context.Context, profile *models.AdminProfile) (*models.AdminProfile, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var p models.AdminProfile
	var role string
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO admin_profiles (id, email, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
			SET email = EXCLUDED.email, display_name = EXCLUDED.display_name,
				role = EXCLUDED.role, updated_at = NOW()
		RETURNING id, email, display_name, role, created_at, updated_at
	`, profile.ID, profile.Email, profile.DisplayName, string(profile.Role)).Scan(
		&p.ID, &p.Email, &p.DisplayName, &role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin profile: %w", err)
	}

	p.Role = models.ParseRole(role)
	return &p, nil
}

// PromoteByEmail sets role on the profile with the given email and reports
// whether a row was updated.
func (s *ProfileService) PromoteByEmail(ctx context.Context, email string, role models.Role) (bool, error) {
	if !role.Valid() {
		return false, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	db, err := s.db.Get(ctx)
	if err != nil {
		return false, err
	}

	result, err := db.Pool.Exec(ctx, `
		UPDATE admin_profiles SET role = $1, updated_at = NOW()
		WHERE email = $2
	`, string(role), email)
	if err != nil {
		return false, fmt.Errorf("failed to update admin profile: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
