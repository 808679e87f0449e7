package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/settingsync/internal/config"
	"github.com/five82/settingsync/internal/prefs"
	"github.com/five82/settingsync/internal/settings"
)

// fakeServer keeps one settings document and echoes it back on GET.
type fakeServer struct {
	mu    sync.Mutex
	theme settings.Theme
	puts  int
	auth  []string
}

func (f *fakeServer) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(settings.ThemePayload{Theme: f.theme})
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		var payload settings.ThemePayload
		if err := json.Unmarshal(body, &payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.theme = payload.Theme
		f.puts++
		_ = json.NewEncoder(w).Encode(payload)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeConfig(t *testing.T, dir, apiURL string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("api_url = %q\nsettings_path = %q\nlog_path = %q\ntoken_file = %q\n",
		apiURL,
		filepath.Join(dir, "settings.toml"),
		filepath.Join(dir, "settingsync.log"),
		filepath.Join(dir, "token"),
	)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen_SaveNowRoundTrip(t *testing.T) {
	fake := &fakeServer{theme: settings.Defaults().Theme()}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv(config.EnvToken, "opaque-token")
	cfgPath := writeConfig(t, dir, srv.URL)

	sess, err := Open(context.Background(), Options{ConfigPath: cfgPath, Logger: zap.NewNop()})
	require.NoError(t, err)
	defer sess.Close()

	require.True(t, sess.Auth.Authenticated())
	require.NoError(t, sess.Sync.Update(settings.KeyThemeMode, settings.ModeDark))
	require.NoError(t, sess.Sync.SaveNow(context.Background()))

	fake.mu.Lock()
	assert.Equal(t, 1, fake.puts)
	assert.Equal(t, settings.ModeDark, fake.theme.ThemeMode)
	assert.Contains(t, fake.auth, "Bearer opaque-token")
	fake.mu.Unlock()

	// Written through to the configured settings file.
	stored := prefs.Load(filepath.Join(dir, "settings.toml"))
	assert.Equal(t, settings.ModeDark, stored.ThemeMode)

	// The refresh after save recorded a successful fetch.
	snap := sess.Query.Snapshot()
	assert.True(t, snap.HasRemote)
	assert.NoError(t, snap.LastError)
}

func TestOpen_RefreshAppliesServerSettings(t *testing.T) {
	theme := settings.Defaults().Theme()
	theme.ThemeContrast = settings.ContrastBold
	fake := &fakeServer{theme: theme}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv(config.EnvToken, "opaque-token")
	cfgPath := writeConfig(t, dir, srv.URL)

	sess, err := Open(context.Background(), Options{ConfigPath: cfgPath, Logger: zap.NewNop()})
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Query.Refresh(context.Background()))
	assert.Equal(t, settings.ContrastBold, sess.Sync.Settings().ThemeContrast)

	fake.mu.Lock()
	assert.Zero(t, fake.puts, "applying a fetched snapshot must not upload")
	fake.mu.Unlock()
}

func TestOpen_OfflineNeverCallsServer(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv(config.EnvToken, "opaque-token")
	cfgPath := writeConfig(t, dir, srv.URL)

	sess, err := Open(context.Background(), Options{ConfigPath: cfgPath, Offline: true, Logger: zap.NewNop()})
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Sync.Update(settings.KeyThemeLayout, settings.LayoutMini))
	require.NoError(t, sess.Sync.SaveNow(context.Background()))
	require.NoError(t, sess.Query.Refresh(context.Background()))

	fake.mu.Lock()
	assert.Empty(t, fake.auth)
	fake.mu.Unlock()
	assert.Equal(t, settings.LayoutMini, prefs.Load(filepath.Join(dir, "settings.toml")).ThemeLayout)
}

func TestOpen_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "ftp://example.com")

	_, err := Open(context.Background(), Options{ConfigPath: cfgPath, Logger: zap.NewNop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestOpen_MissingTokenFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvToken, "")
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")

	sess, err := Open(context.Background(), Options{ConfigPath: cfgPath, Logger: zap.NewNop()})
	require.NoError(t, err)
	defer sess.Close()

	assert.False(t, sess.Auth.Authenticated())
	assert.False(t, sess.Sync.Status().Authenticated)
}
