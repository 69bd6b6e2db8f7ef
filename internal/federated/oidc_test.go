package federated

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIssuer struct {
	server *httptest.Server
	key    *rsa.PrivateKey
}

func newTestIssuer(t *testing.T) *testIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ti := &testIssuer{key: key}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 ti.server.URL,
			"authorization_endpoint": ti.server.URL + "/authorize",
			"token_endpoint":         ti.server.URL + "/token",
			"jwks_uri":               ti.server.URL + "/jwks",
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "test-key",
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	})
	ti.server = httptest.NewServer(mux)
	t.Cleanup(ti.server.Close)
	return ti
}

func (ti *testIssuer) sign(t *testing.T, audience, subject, email string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":   ti.server.URL,
		"aud":   audience,
		"sub":   subject,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"
	signed, err := token.SignedString(ti.key)
	require.NoError(t, err)
	return signed
}

func TestOIDCVerifier_Valid(t *testing.T) {
	issuer := newTestIssuer(t)
	v := NewOIDCVerifier(issuer.server.URL, "site-admin", time.Second)

	token := issuer.sign(t, "site-admin", "user-123", "ops@example.com", time.Now().Add(time.Hour))
	sess, err := v.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", sess.Subject)
	assert.Equal(t, "ops@example.com", sess.Email)
}

func TestOIDCVerifier_WrongAudience(t *testing.T) {
	issuer := newTestIssuer(t)
	v := NewOIDCVerifier(issuer.server.URL, "site-admin", time.Second)

	token := issuer.sign(t, "another-client", "user-123", "ops@example.com", time.Now().Add(time.Hour))
	sess, err := v.Verify(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, sess)
}

func TestOIDCVerifier_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	v := NewOIDCVerifier(issuer.server.URL+"/.well-known/openid-configuration", "site-admin", time.Second)

	token := issuer.sign(t, "site-admin", "user-123", "ops@example.com", time.Now().Add(-time.Hour))
	sess, err := v.Verify(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, sess)
}

func TestOIDCVerifier_NotConfigured(t *testing.T) {
	v := NewOIDCVerifier("", "", time.Second)

	_, err := v.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOIDCVerifier_DiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	v := NewOIDCVerifier(server.URL, "site-admin", time.Second)

	sess, err := v.Verify(context.Background(), "token")

	assert.Error(t, err)
	assert.Nil(t, sess)
}
