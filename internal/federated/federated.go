// Package federated verifies sessions issued by the external identity
// provider and talks to its admin API.
package federated

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured  = errors.New("federated identity provider not configured")
	ErrInvalidSession = errors.New("invalid federated session")
)

// Session is what the core needs from a federated session: the subject and,
// when the provider shares it, the email.
type Session struct {
	Subject string
	Email   string
}

// Verifier checks a raw federated session token.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Session, error)
}

// Disabled rejects every federated session.
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (*Session, error) {
	return nil, ErrNotConfigured
}
