package federated

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type InvitedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AdminClient calls the GoTrue admin API with the service role key.
type AdminClient struct {
	baseURL    string
	serviceKey string
	redirectTo string
	httpClient *http.Client
}

func NewAdminClient(baseURL, serviceKey, redirectTo string, timeout time.Duration) *AdminClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AdminClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		redirectTo: redirectTo,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AdminClient) Configured() bool {
	return c != nil && c.baseURL != "" && c.serviceKey != ""
}

func (c *AdminClient) InviteUserByEmail(ctx context.Context, email string, metadata map[string]any) (*InvitedUser, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]any{
		"email": email,
		"data":  metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode invite: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/invite"
	if c.redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(c.redirectTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build invite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send invite: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read invite response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, errorMessage(body))
	}

	var user InvitedUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode invite response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned no user id")
	}

	return &user, nil
}

func errorMessage(body []byte) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		for _, m := range []string{e.Msg, e.Message, e.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(body))
}
