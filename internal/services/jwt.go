package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer       = "site-admin-api"
	DefaultSessionTTL = 24 * time.Hour
)

// AdminCredentials is the single configured local administrator. When
// PasswordHash is set it is a bcrypt hash and Password is ignored.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// TokenAuthority issues and verifies the self-contained admin session token.
// Tokens are never refreshed; a new login is required after the window ends.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	creds  AdminCredentials
	now    func() time.Time
}

// SessionClaims carries the issuance instant in milliseconds next to the
// standard iat, which only has whole-second precision.
type SessionClaims struct {
	Role       models.Role `json:"role"`
	IssuedAtMs int64       `json:"iat_ms"`
	jwt.RegisteredClaims
}

// NewTokenAuthority returns an authority with the fixed 24h session window.
func NewTokenAuthority(secret string, creds AdminCredentials) *TokenAuthority {
	return &TokenAuthority{
		secret: []byte(secret),
		ttl:    DefaultSessionTTL,
		creds:  creds,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for issuing and verifying.
func (a *TokenAuthority) WithClock(now func() time.Time) *TokenAuthority {
	a.now = now
	return a
}

func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

func (a *TokenAuthority) Issue(username, password string) (string, time.Time, error) {
	if !a.credentialsMatch(username, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	issuedAt := a.now().Truncate(time.Millisecond)
	expiresAt := issuedAt.Add(a.ttl)

	claims := SessionClaims{
		Role:       models.RoleAdmin,
		IssuedAtMs: issuedAt.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    tokenIssuer,
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the identity carried by token. Any structural, signature or
// expiry problem yields ErrInvalidToken and a nil identity.
func (a *TokenAuthority) Verify(tokenString string) (*models.Identity, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithTimeFunc(a.now),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	if claims.Role != models.RoleAdmin {
		return nil, ErrInvalidToken
	}
	issuedAt := time.UnixMilli(claims.IssuedAtMs)
	if claims.IssuedAtMs <= 0 || issuedAt.Unix() != claims.IssuedAt.Unix() {
		return nil, ErrInvalidToken
	}
	// exp is trusted only within the fixed window from issuance
	if !a.now().Before(issuedAt.Add(a.ttl)) {
		return nil, ErrInvalidToken
	}

	return &models.Identity{
		Subject:     claims.Subject,
		Email:       claims.Subject,
		Role:        models.RoleAdmin,
		DisplayName: models.EmailLocalPart(claims.Subject),
		Method:      models.AuthMethodLocal,
	}, nil
}

// ceilSecond rounds up to the whole second NumericDate can carry, so the
// encoded exp never ends before the millisecond window does.
func ceilSecond(t time.Time) time.Time {
	s := t.Truncate(time.Second)
	if s.Before(t) {
		s = s.Add(time.Second)
	}
	return s
}

func (a *TokenAuthority) credentialsMatch(username, password string) bool {
	if a.creds.Username == "" || (a.creds.Password == "" && a.creds.PasswordHash == "") {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1

	var passOK bool
	if a.creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	}

	return userOK && passOK
}
