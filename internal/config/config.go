package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the client needs to reach the settings API.
type Config struct {
	APIURL       string
	Token        string // only ever set from the environment
	TokenFile    string
	SettingsPath string
	LogPath      string
	Debounce     time.Duration
	RefreshEvery time.Duration
}

// Environment overrides.
const (
	EnvAPIURL    = "SETTINGSYNC_API_URL"
	EnvToken     = "SETTINGSYNC_TOKEN"
	EnvTokenFile = "SETTINGSYNC_TOKEN_FILE"
)

const (
	defaultConfigPath   = "~/.config/settingsync/config.toml"
	defaultAPIURL       = "http://127.0.0.1:8080"
	defaultTokenFile    = "~/.config/settingsync/token"
	defaultSettingsPath = "~/.config/settingsync/settings.toml"
	defaultLogPath      = "~/.local/state/settingsync/settingsync.log"
	defaultDebounce     = 1500 * time.Millisecond
	defaultRefreshEvery = 30 * time.Second
)

// Load locates and parses the config, falling back to defaults when missing,
// then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		TokenFile      string `toml:"token_file"`
		SettingsPath   string `toml:"settings_path"`
		LogPath        string `toml:"log_path"`
		DebounceMS     int    `toml:"debounce_ms"`
		RefreshSeconds int    `toml:"refresh_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.SettingsPath); v != "" {
		cfg.SettingsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.RefreshSeconds > 0 {
		cfg.RefreshEvery = time.Duration(raw.RefreshSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks the values the client cannot run without.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.SettingsPath, validation.Required),
		validation.Field(&c.Debounce, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.RefreshEvery, validation.Required, validation.Min(time.Second)),
	)
}

func defaults() Config {
	return Config{
		APIURL:       defaultAPIURL,
		TokenFile:    mustExpand(defaultTokenFile),
		SettingsPath: mustExpand(defaultSettingsPath),
		LogPath:      mustExpand(defaultLogPath),
		Debounce:     defaultDebounce,
		RefreshEvery: defaultRefreshEvery,
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		cfg.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTokenFile)); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
}

func httpURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
