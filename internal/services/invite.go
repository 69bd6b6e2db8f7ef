package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/dimitrije/site-admin-api/internal/models"
)

type InviteRequest struct {
	Email       string
	DisplayName string
	Role        models.Role
}

// InviteService creates new administrators through the identity provider and
// records their profile row.
type InviteService struct {
	inviter  Inviter
	profiles ProfileRepository
	logger   *slog.Logger
}

func NewInviteService(inviter Inviter, profiles ProfileRepository, logger *slog.Logger) *InviteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InviteService{inviter: inviter, profiles: profiles, logger: logger}
}

// Invite requires a super_admin actor. It returns the subject id of the new
// administrator.
func (s *InviteService) Invite(ctx context.Context, actor *models.Identity, req InviteRequest) (string, error) {
	if !models.Authorize(actor, models.RoleSuperAdmin) {
		return "", ErrForbidden
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	if s.inviter == nil || !s.inviter.Configured() || s.profiles == nil || !s.profiles.Configured() {
		return "", ErrNotConfigured
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = models.EmailLocalPart(email)
	}

	user, err := s.inviter.InviteUserByEmail(ctx, email, map[string]any{
		"display_name": displayName,
		"role":         string(role),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	_, err = s.profiles.Upsert(ctx, &models.AdminProfile{
		ID:          user.ID,
		Email:       email,
		DisplayName: &displayName,
		Role:        role,
	})
	if err != nil {
		// the provider account exists; the profile row has to be written
		// again for that user id or they stay at profile_missing
		s.logger.ErrorContext(ctx, "invited user has no admin profile",
			"user_id", user.ID, "email", email, "role", role, "error", err)
		return "", fmt.Errorf("%w: user %s was invited but the admin profile write failed: %v", ErrUpstream, user.ID, err)
	}

	s.logger.InfoContext(ctx, "admin invited", "invited_by", actor.Email, "email", email, "role", role, "user_id", user.ID)
	return user.ID, nil
}
