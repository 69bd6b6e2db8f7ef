package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/site-admin-api/internal/services"
)

const (
	TestSecret        = "test-secret-key-for-testing-only"
	TestAdminUsername = "ops@example.com"
	TestAdminPassword = "correct horse battery staple"
)

// TestTokenAuthority creates a TokenAuthority with the test admin credentials
func TestTokenAuthority() *services.TokenAuthority {
	return services.NewTokenAuthority(TestSecret, services.AdminCredentials{
		Username: TestAdminUsername,
		Password: TestAdminPassword,
	})
}

// GenerateTestToken issues a valid local admin session token
func GenerateTestToken(t *testing.T) string {
	t.Helper()
	token, _, err := TestTokenAuthority().Issue(TestAdminUsername, TestAdminPassword)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return token
}

// SessionCookie returns the local admin session cookie for token
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: services.LocalSessionCookie, Value: token}
}

// HTTPTestClient provides helper methods for HTTP testing
type HTTPTestClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

// NewHTTPTestClient creates a new HTTP test client
func NewHTTPTestClient(t *testing.T, handler http.Handler) *HTTPTestClient {
	return &HTTPTestClient{t: t, handler: handler}
}

// WithCookie returns a client that sends cookie on every request
func (c *HTTPTestClient) WithCookie(cookie *http.Cookie) *HTTPTestClient {
	cookies := append([]*http.Cookie{}, c.cookies...)
	return &HTTPTestClient{t: c.t, handler: c.handler, cookies: append(cookies, cookie)}
}

// Request makes an HTTP request and returns the response
func (c *HTTPTestClient) Request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// GET makes a GET request
func (c *HTTPTestClient) GET(path string, headers map[string]string) *httptest.ResponseRecorder {
	return c.Request(http.MethodGet, path, nil, headers)
}

// POST makes a POST request
func (c *HTTPTestClient) POST(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	return c.Request(http.MethodPost, path, body, headers)
}

// PUT makes a PUT request
func (c *HTTPTestClient) PUT(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	return c.Request(http.MethodPut, path, body, headers)
}

// ParseJSON parses the response body as JSON
func ParseJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
}

// AssertStatus asserts the response status code
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rec.Code, rec.Body.String())
	}
}
