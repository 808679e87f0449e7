// Package api talks to the remote per-user settings endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/settingsync/internal/settings"
)

// SettingsPath is the endpoint serving the per-user settings document.
const SettingsPath = "/api/user/settings"

// ErrUnauthorized is wrapped into errors for 401/403 responses.
var ErrUnauthorized = errors.New("unauthorized")

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Bearer() string
}

// SettingsClient is implemented by *Client and can be faked in tests.
type SettingsClient interface {
	FetchSettings(ctx context.Context) (settings.Remote, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
}

// Ensure Client implements SettingsClient at compile time.
var _ SettingsClient = (*Client)(nil)

// Client talks to the remote settings API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "settingsync/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for baseURL. tokens may be nil for anonymous use.
func NewClient(baseURL string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
	}, nil
}

// FetchSettings retrieves the server's snapshot of the user's settings.
func (c *Client) FetchSettings(ctx context.Context) (settings.Remote, error) {
	if c == nil {
		return settings.Remote{}, fmt.Errorf("client is nil")
	}
	var payload settings.Remote
	if err := c.do(ctx, http.MethodGet, SettingsPath, nil, &payload); err != nil {
		return settings.Remote{}, err
	}
	return payload, nil
}

// SaveSettings replaces the server's theme settings with s.
func (c *Client) SaveSettings(ctx context.Context, s settings.Settings) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, SettingsPath, settings.ThemePayload{Theme: s.Theme()}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Bearer(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("api %s returned status %d: %w", rel.String(), resp.StatusCode, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
