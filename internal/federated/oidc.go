package federated

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCVerifier validates ID tokens from a generic OpenID Connect provider.
// Discovery runs on first use and is retried until it succeeds.
type OIDCVerifier struct {
	issuer     string
	clientID   string
	httpClient *http.Client

	mu       sync.Mutex
	verifier *gooidc.IDTokenVerifier
}

func NewOIDCVerifier(issuerURL, clientID string, timeout time.Duration) *OIDCVerifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	issuer := strings.TrimSuffix(issuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	return &OIDCVerifier{
		issuer:     issuer,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Session, error) {
	if v.issuer == "" || v.clientID == "" {
		return nil, ErrNotConfigured
	}
	if rawToken == "" {
		return nil, ErrInvalidSession
	}

	verifier, err := v.idTokenVerifier(ctx)
	if err != nil {
		return nil, err
	}

	idToken, err := verifier.Verify(v.clientContext(ctx), rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return &Session{Subject: idToken.Subject, Email: claims.Email}, nil
}

func (v *OIDCVerifier) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
}

func (v *OIDCVerifier) idTokenVerifier(ctx context.Context) (*gooidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.verifier != nil {
		return v.verifier, nil
	}

	provider, err := gooidc.NewProvider(v.clientContext(ctx), v.issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	v.verifier = provider.Verifier(&gooidc.Config{ClientID: v.clientID})
	return v.verifier, nil
}
