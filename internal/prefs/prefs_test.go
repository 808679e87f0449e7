package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/settingsync/internal/settings"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Load("")
	if diff := cmp.Diff(settings.Defaults(), got); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "settingsync")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "[settings]\nthemeMode = \"dark\"\nfontSizeScale = 1.25\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Load("")
	if got.ThemeMode != settings.ModeDark {
		t.Fatalf("ThemeMode = %q, want dark", got.ThemeMode)
	}
	if got.FontSizeScale != 1.25 {
		t.Fatalf("FontSizeScale = %v, want 1.25", got.FontSizeScale)
	}
	// Keys absent from the file keep their defaults.
	if got.ThemeLayout != settings.LayoutVertical {
		t.Fatalf("ThemeLayout = %q, want vertical", got.ThemeLayout)
	}
}

func TestSave_CreatesFileAndDirsAndRoundTrips(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "subdir", "settings.toml")

	want := settings.Defaults()
	want.ThemeStretch = true
	want.ThemeColorPresets = settings.PresetOrange
	want.FontSizeScale = 0.9

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "[settings]") {
		t.Fatalf("file = %q, want [settings] table", raw)
	}

	if diff := cmp.Diff(want, Load(path)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only settings.toml", len(entries))
	}
}

func TestLoad_InvalidTOMLFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if diff := cmp.Diff(settings.Defaults(), Load(path)); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NonPositiveScaleAndBlankEnumsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	body := "[settings]\nthemeMode = \"  \"\nfontSizeScale = 0.0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := Load(path)
	if got.ThemeMode != settings.ModeLight || got.FontSizeScale != 1 {
		t.Fatalf("Load = %#v, want defaults for blank mode and zero scale", got)
	}
}

func TestFile_SaveThenLoad(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "settings.toml")}
	want := settings.Defaults()
	want.ThemeMode = settings.ModeDark
	if err := f.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := f.Load(); got.ThemeMode != settings.ModeDark {
		t.Fatalf("Load().ThemeMode = %q, want dark", got.ThemeMode)
	}
}
