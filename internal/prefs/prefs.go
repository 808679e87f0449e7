// Package prefs is the durable local mirror of the settings record.
// Settings are stored under the [settings] table of
// ~/.config/settingsync/settings.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/settingsync/internal/settings"
)

// StorageKey is the table name the settings record lives under.
const StorageKey = "settings"

const defaultPrefsPath = "~/.config/settingsync/settings.toml"

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// document is the on-disk shape. Fields are pointers so keys missing from the
// file fall back to their individual defaults.
type document struct {
	Settings *record `toml:"settings"`
}

type record struct {
	ThemeStretch      *bool    `toml:"themeStretch"`
	ThemeMode         *string  `toml:"themeMode"`
	ThemeDirection    *string  `toml:"themeDirection"`
	ThemeContrast     *string  `toml:"themeContrast"`
	ThemeLayout       *string  `toml:"themeLayout"`
	ThemeColorPresets *string  `toml:"themeColorPresets"`
	FontSizeScale     *float64 `toml:"fontSizeScale"`
}

// Load reads settings from path, falling back to defaults if the file is
// missing, unreadable or corrupt.
func Load(path string) settings.Settings {
	s := settings.Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return s
	}

	file, err := os.Open(resolved)
	if err != nil {
		return s // Missing or unreadable
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return s
	}

	var doc document
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return settings.Defaults()
	}
	if doc.Settings == nil {
		return s
	}

	r := doc.Settings
	if r.ThemeStretch != nil {
		s.ThemeStretch = *r.ThemeStretch
	}
	if v := trimmed(r.ThemeMode); v != "" {
		s.ThemeMode = settings.Mode(v)
	}
	if v := trimmed(r.ThemeDirection); v != "" {
		s.ThemeDirection = settings.Direction(v)
	}
	if v := trimmed(r.ThemeContrast); v != "" {
		s.ThemeContrast = settings.Contrast(v)
	}
	if v := trimmed(r.ThemeLayout); v != "" {
		s.ThemeLayout = settings.Layout(v)
	}
	if v := trimmed(r.ThemeColorPresets); v != "" {
		s.ThemeColorPresets = settings.ColorPreset(v)
	}
	if r.FontSizeScale != nil && *r.FontSizeScale > 0 {
		s.FontSizeScale = *r.FontSizeScale
	}
	return s
}

// Save writes s to path, creating directories as needed. The file is
// replaced atomically so a crash mid-write never leaves a torn record.
func Save(path string, s settings.Settings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(map[string]settings.Settings{StorageKey: s})
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// File binds Load and Save to a single path.
type File struct {
	Path string
}

// Load implements the synchronizer's storage contract.
func (f File) Load() settings.Settings {
	return Load(f.Path)
}

// Save implements the synchronizer's storage contract.
func (f File) Save(s settings.Settings) error {
	return Save(f.Path, s)
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
