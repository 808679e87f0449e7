package settings

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.ThemeMode != ModeLight || d.ThemeDirection != DirectionLTR || d.FontSizeScale != 1 {
		t.Fatalf("Defaults() = %#v, want light/ltr/1", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v, want nil", err)
	}
}

func TestWith_SetsEachKey(t *testing.T) {
	tests := []struct {
		key   Key
		value any
		want  func(Settings) bool
	}{
		{KeyThemeStretch, true, func(s Settings) bool { return s.ThemeStretch }},
		{KeyThemeMode, "dark", func(s Settings) bool { return s.ThemeMode == ModeDark }},
		{KeyThemeMode, ModeDark, func(s Settings) bool { return s.ThemeMode == ModeDark }},
		{KeyThemeDirection, DirectionRTL, func(s Settings) bool { return s.ThemeDirection == DirectionRTL }},
		{KeyThemeContrast, "bold", func(s Settings) bool { return s.ThemeContrast == ContrastBold }},
		{KeyThemeLayout, LayoutMini, func(s Settings) bool { return s.ThemeLayout == LayoutMini }},
		{KeyThemeColorPresets, "cyan", func(s Settings) bool { return s.ThemeColorPresets == PresetCyan }},
		{KeyFontSizeScale, 1.25, func(s Settings) bool { return s.FontSizeScale == 1.25 }},
		{KeyFontSizeScale, 1, func(s Settings) bool { return s.FontSizeScale == 1 }},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			before := Defaults()
			got, err := before.With(tt.key, tt.value)
			if err != nil {
				t.Fatalf("With(%s, %v) error = %v", tt.key, tt.value, err)
			}
			if !tt.want(got) {
				t.Fatalf("With(%s, %v) = %#v", tt.key, tt.value, got)
			}
			if diff := cmp.Diff(Defaults(), before); diff != "" {
				t.Fatalf("receiver mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWith_PermissiveEnumButStrictType(t *testing.T) {
	s, err := Defaults().With(KeyThemeMode, "sepia")
	if err != nil {
		t.Fatalf("With(themeMode, sepia) error = %v, want nil", err)
	}
	if s.ThemeMode != "sepia" {
		t.Fatalf("ThemeMode = %q, want sepia", s.ThemeMode)
	}
	if s.Validate() == nil {
		t.Fatal("Validate() = nil, want error for sepia")
	}

	if _, err := Defaults().With(KeyThemeStretch, "yes"); !errors.Is(err, ErrValueType) {
		t.Fatalf("With(themeStretch, string) error = %v, want ErrValueType", err)
	}
	if _, err := Defaults().With(KeyFontSizeScale, "big"); !errors.Is(err, ErrValueType) {
		t.Fatalf("With(fontSizeScale, string) error = %v, want ErrValueType", err)
	}
	for _, bad := range []any{0.0, -1, math.NaN()} {
		got, err := Defaults().With(KeyFontSizeScale, bad)
		if !errors.Is(err, ErrNonPositiveScale) {
			t.Fatalf("With(fontSizeScale, %v) error = %v, want ErrNonPositiveScale", bad, err)
		}
		if got.FontSizeScale != 1 {
			t.Fatalf("With(fontSizeScale, %v) changed scale to %v", bad, got.FontSizeScale)
		}
	}
	if _, err := Defaults().With(Key("nope"), 1); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("With(nope) error = %v, want ErrUnknownKey", err)
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(KeyFontSizeScale, " 1.25 ")
	if err != nil || v.(float64) != 1.25 {
		t.Fatalf("ParseValue(fontSizeScale) = %v, %v", v, err)
	}
	v, err = ParseValue(KeyThemeStretch, "true")
	if err != nil || v.(bool) != true {
		t.Fatalf("ParseValue(themeStretch) = %v, %v", v, err)
	}
	if _, err := ParseValue(KeyThemeStretch, "maybe"); err == nil {
		t.Fatal("ParseValue(themeStretch, maybe) error = nil")
	}
	if _, err := ParseValue(Key("x"), "1"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("ParseValue(x) error = %v, want ErrUnknownKey", err)
	}
}

func TestNext_CyclesAndClamps(t *testing.T) {
	s := Defaults()
	if got := s.Next(KeyThemeMode, 1); got != "dark" {
		t.Fatalf("Next(themeMode, +1) = %v, want dark", got)
	}
	if got := s.Next(KeyThemeLayout, -1); got != "mini" {
		t.Fatalf("Next(themeLayout, -1) = %v, want mini", got)
	}
	if got := s.Next(KeyThemeStretch, 1); got != true {
		t.Fatalf("Next(themeStretch) = %v, want true", got)
	}
	if got := s.Next(KeyFontSizeScale, 1); got != 1.05 {
		t.Fatalf("Next(fontSizeScale, +1) = %v, want 1.05", got)
	}
	s.FontSizeScale = MaxFontSizeScale
	if got := s.Next(KeyFontSizeScale, 1); got != MaxFontSizeScale {
		t.Fatalf("Next at max = %v, want %v", got, MaxFontSizeScale)
	}
	s.ThemeColorPresets = "teal"
	if got := s.Next(KeyThemeColorPresets, 1); got != "default" {
		t.Fatalf("Next from unknown preset = %v, want default", got)
	}
}

func TestMerge_OnlyChangedNonNilFields(t *testing.T) {
	local := Defaults()
	dark := ModeDark
	light := ModeLight
	scale := 1.25

	merged, changed := RemoteTheme{ThemeMode: &dark, FontSizeScale: &scale}.Merge(local)
	if diff := cmp.Diff([]Key{KeyThemeMode, KeyFontSizeScale}, changed); diff != "" {
		t.Fatalf("changed keys (-want +got):\n%s", diff)
	}
	if merged.ThemeMode != ModeDark || merged.FontSizeScale != 1.25 {
		t.Fatalf("merged = %#v", merged)
	}
	if merged.ThemeLayout != local.ThemeLayout {
		t.Fatalf("nil field overwrote local value: %#v", merged)
	}

	_, changed = RemoteTheme{ThemeMode: &light}.Merge(local)
	if len(changed) != 0 {
		t.Fatalf("changed = %v, want none for equal value", changed)
	}

	_, changed = RemoteFrom(local).Theme.Merge(local)
	if len(changed) != 0 {
		t.Fatalf("changed = %v, want none for identical snapshot", changed)
	}
}

func TestMerge_IgnoresNonPositiveScale(t *testing.T) {
	zero := 0.0
	merged, changed := RemoteTheme{FontSizeScale: &zero}.Merge(Defaults())
	if len(changed) != 0 || merged.FontSizeScale != 1 {
		t.Fatalf("Merge(zero scale) = %v changed %v, want untouched", merged.FontSizeScale, changed)
	}
}

func TestDirectionFor(t *testing.T) {
	tests := map[string]Direction{
		"ar":    DirectionRTL,
		"ar-SA": DirectionRTL,
		"en":    DirectionLTR,
		"fr-FR": DirectionLTR,
		"":      DirectionLTR,
		"!!":    DirectionLTR,
	}
	for lang, want := range tests {
		if got := DirectionFor(lang); got != want {
			t.Errorf("DirectionFor(%q) = %q, want %q", lang, got, want)
		}
	}
}
