package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/settingsync/internal/settings"
)

type staticToken string

func (s staticToken) Bearer() string { return string(s) }

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8080" {
		t.Fatalf("default url = %q, want http://127.0.0.1:8080", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchAndSave(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent, gotRequestID, gotContentType string
	var gotBody map[string]map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SettingsPath {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"theme":{"themeMode":"dark","fontSizeScale":1.25,"themeLayout":null}}`))
		case http.MethodPut:
			gotContentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	remote, err := c.FetchSettings(ctx)
	if err != nil {
		t.Fatalf("FetchSettings returned error: %v", err)
	}
	if remote.Theme.ThemeMode == nil || *remote.Theme.ThemeMode != settings.ModeDark {
		t.Fatalf("ThemeMode = %v, want dark", remote.Theme.ThemeMode)
	}
	if remote.Theme.FontSizeScale == nil || *remote.Theme.FontSizeScale != 1.25 {
		t.Fatalf("FontSizeScale = %v, want 1.25", remote.Theme.FontSizeScale)
	}
	if remote.Theme.ThemeLayout != nil || remote.Theme.ThemeStretch != nil {
		t.Fatalf("null/absent fields decoded as set: %#v", remote.Theme)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "settingsync/") {
		t.Fatalf("User-Agent = %q, want settingsync/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID header missing")
	}

	s := settings.Defaults()
	s.ThemeStretch = true
	s.FontSizeScale = 0.9
	if err := c.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	theme := gotBody["theme"]
	if len(theme) != 7 {
		t.Fatalf("theme payload has %d fields, want 7: %v", len(theme), theme)
	}
	if theme["themeStretch"] != true || theme["fontSizeScale"] != 0.9 || theme["themeMode"] != "light" {
		t.Fatalf("theme payload = %v", theme)
	}
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"theme":{}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken(""))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchSettings(context.Background()); err != nil {
		t.Fatalf("FetchSettings returned error: %v", err)
	}
	if sawAuth {
		t.Fatal("Authorization header sent without a token")
	}
}

func TestClient_HTTPErrorsAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPut:
			if r.Header.Get("Authorization") == "" {
				http.Error(w, "who are you", http.StatusUnauthorized)
				return
			}
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchSettings(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchSettings error = %v, want decode response error", err)
	}

	err = c.SaveSettings(context.Background(), settings.Defaults())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("SaveSettings error = %v, want ErrUnauthorized", err)
	}

	authed, err := NewClient(server.URL, staticToken("tok"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	err = authed.SaveSettings(context.Background(), settings.Defaults())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("SaveSettings error = %v, want status 500 error", err)
	}
}
