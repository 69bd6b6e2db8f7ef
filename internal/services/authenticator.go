package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dimitrije/site-admin-api/internal/federated"
	"github.com/dimitrije/site-admin-api/internal/models"
)

const LocalSessionCookie = "admin_token"

type AuthStatus int

const (
	// AuthUnauthenticated means no usable session of either kind.
	AuthUnauthenticated AuthStatus = iota
	AuthLocal
	AuthFederated
	// AuthProfileMissing means a valid federated session without an
	// admin_profiles row.
	AuthProfileMissing
)

func (s AuthStatus) String() string {
	switch s {
	case AuthLocal:
		return "local"
	case AuthFederated:
		return "federated"
	case AuthProfileMissing:
		return "profile_missing"
	default:
		return "unauthenticated"
	}
}

// AuthResult is the outcome of Authenticate. Only AuthLocal and AuthFederated
// carry an identity.
type AuthResult struct {
	Status   AuthStatus
	identity *models.Identity
}

func (r AuthResult) Identity() (*models.Identity, bool) {
	if r.identity == nil || (r.Status != AuthLocal && r.Status != AuthFederated) {
		return nil, false
	}
	return r.identity, true
}

func (r AuthResult) Authenticated() bool {
	_, ok := r.Identity()
	return ok
}

// Authenticator tries the local admin token first and then the federated
// session. It never mutates session state and never fails open.
type Authenticator struct {
	local           LocalVerifier
	federated       federated.Verifier
	profiles        ProfileRepository
	federatedCookie string
	logger          *slog.Logger
}

func NewAuthenticator(local LocalVerifier, fed federated.Verifier, profiles ProfileRepository, federatedCookie string, logger *slog.Logger) *Authenticator {
	if fed == nil {
		fed = federated.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		local:           local,
		federated:       fed,
		profiles:        profiles,
		federatedCookie: federatedCookie,
		logger:          logger,
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) AuthResult {
	if cookie, err := r.Cookie(LocalSessionCookie); err == nil && cookie.Value != "" {
		if identity, err := a.local.Verify(cookie.Value); err == nil {
			return AuthResult{Status: AuthLocal, identity: identity}
		}
	}

	raw := a.federatedToken(r)
	if raw == "" {
		return AuthResult{Status: AuthUnauthenticated}
	}

	sess, err := a.federated.Verify(ctx, raw)
	if err != nil {
		if !errors.Is(err, federated.ErrNotConfigured) {
			a.logger.DebugContext(ctx, "federated session rejected", "error", err)
		}
		return AuthResult{Status: AuthUnauthenticated}
	}

	if a.profiles == nil || !a.profiles.Configured() {
		return AuthResult{Status: AuthUnauthenticated}
	}

	profile, err := a.profiles.GetByID(ctx, sess.Subject)
	if errors.Is(err, ErrProfileNotFound) {
		return AuthResult{Status: AuthProfileMissing}
	}
	if err != nil {
		a.logger.WarnContext(ctx, "admin profile lookup failed", "subject", sess.Subject, "error", err)
		return AuthResult{Status: AuthUnauthenticated}
	}
	if !profile.Role.Valid() {
		a.logger.WarnContext(ctx, "admin profile has unknown role", "subject", sess.Subject)
		return AuthResult{Status: AuthUnauthenticated}
	}

	email := profile.Email
	if email == "" {
		email = sess.Email
	}
	displayName := profile.Name()
	if displayName == "" {
		displayName = models.EmailLocalPart(email)
	}

	return AuthResult{
		Status: AuthFederated,
		identity: &models.Identity{
			Subject:     sess.Subject,
			Email:       email,
			Role:        profile.Role,
			DisplayName: displayName,
			Method:      models.AuthMethodFederated,
		},
	}
}

func (a *Authenticator) federatedToken(r *http.Request) string {
	if a.federatedCookie != "" {
		if cookie, err := r.Cookie(a.federatedCookie); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
