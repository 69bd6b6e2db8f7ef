package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dimitrije/site-admin-api/internal/config"
	"golang.org/x/oauth2"
)

var ErrNotConfigured = errors.New("analytics integration not configured")

// Client runs HogQL queries against the analytics project API. The HTTP
// client is built once, on first use.
type Client struct {
	host      string
	projectID string
	apiKey    string
	timeout   time.Duration

	once       sync.Once
	httpClient *http.Client
}

func NewClient(cfg config.AnalyticsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		host:      strings.TrimSuffix(cfg.Host, "/"),
		projectID: cfg.ProjectID,
		apiKey:    cfg.APIKey,
		timeout:   timeout,
	}
}

func (c *Client) Configured() bool {
	return c.host != "" && c.projectID != "" && c.apiKey != ""
}

func (c *Client) client() *http.Client {
	c.once.Do(func() {
		base := &http.Client{Timeout: c.timeout}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		c.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: c.apiKey,
			TokenType:   "Bearer",
		}))
	})
	return c.httpClient
}

type queryRequest struct {
	Query struct {
		Kind  string `json:"kind"`
		Query string `json:"query"`
	} `json:"query"`
}

type queryResponse struct {
	Results [][]any `json:"results"`
}

// Query executes a HogQL statement and returns its result rows.
func (c *Client) Query(ctx context.Context, hogql string) ([][]any, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var body queryRequest
	body.Query.Kind = "HogQLQuery"
	body.Query.Query = hogql
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/projects/%s/query/", c.host, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analytics api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var out queryResponse
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	if out.Results == nil {
		return nil, errors.New("query response has no results")
	}

	return out.Results, nil
}
