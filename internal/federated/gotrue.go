package federated

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const gotrueAudience = "authenticated"

type gotrueClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GoTrueVerifier validates GoTrue access tokens, which are HS256 JWTs signed
// with the project JWT secret.
type GoTrueVerifier struct {
	secret []byte
}

func NewGoTrueVerifier(secret string) *GoTrueVerifier {
	return &GoTrueVerifier{secret: []byte(secret)}
}

func (v *GoTrueVerifier) Verify(_ context.Context, rawToken string) (*Session, error) {
	if len(v.secret) == 0 {
		return nil, ErrNotConfigured
	}
	if rawToken == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(rawToken, &gotrueClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithAudience(gotrueAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*gotrueClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	return &Session{Subject: claims.Subject, Email: claims.Email}, nil
}
