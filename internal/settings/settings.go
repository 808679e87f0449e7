// Package settings defines the presentation settings record shared by the
// local mirror, the remote endpoint and the terminal drawer.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Key names a single settings field. Values match the JSON/TOML field names.
type Key string

const (
	KeyThemeStretch      Key = "themeStretch"
	KeyThemeMode         Key = "themeMode"
	KeyThemeDirection    Key = "themeDirection"
	KeyThemeContrast     Key = "themeContrast"
	KeyThemeLayout       Key = "themeLayout"
	KeyThemeColorPresets Key = "themeColorPresets"
	KeyFontSizeScale     Key = "fontSizeScale"
)

// Mode is the color scheme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Direction is the text direction.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Contrast is the contrast level.
type Contrast string

const (
	ContrastDefault Contrast = "default"
	ContrastBold    Contrast = "bold"
)

// Layout is the navigation layout.
type Layout string

const (
	LayoutVertical   Layout = "vertical"
	LayoutHorizontal Layout = "horizontal"
	LayoutMini       Layout = "mini"
)

// ColorPreset is the accent color.
type ColorPreset string

const (
	PresetDefault ColorPreset = "default"
	PresetCyan    ColorPreset = "cyan"
	PresetPurple  ColorPreset = "purple"
	PresetBlue    ColorPreset = "blue"
	PresetOrange  ColorPreset = "orange"
	PresetRed     ColorPreset = "red"
)

// Font scale bounds used by the drawer and validation.
const (
	MinFontSizeScale  = 0.75
	MaxFontSizeScale  = 1.5
	FontSizeScaleStep = 0.05
)

var (
	// ErrUnknownKey is returned for keys outside the recognized set.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrValueType is returned when a value does not match the key's type.
	ErrValueType = errors.New("value has wrong type for key")
	// ErrNonPositiveScale is returned for a font scale that is zero, negative or NaN.
	ErrNonPositiveScale = errors.New("fontSizeScale must be positive")
)

// Settings is the full preferences record. It is a value type: every
// mutation returns a new copy.
type Settings struct {
	ThemeStretch      bool        `toml:"themeStretch" json:"themeStretch"`
	ThemeMode         Mode        `toml:"themeMode" json:"themeMode"`
	ThemeDirection    Direction   `toml:"themeDirection" json:"themeDirection"`
	ThemeContrast     Contrast    `toml:"themeContrast" json:"themeContrast"`
	ThemeLayout       Layout      `toml:"themeLayout" json:"themeLayout"`
	ThemeColorPresets ColorPreset `toml:"themeColorPresets" json:"themeColorPresets"`
	FontSizeScale     float64     `toml:"fontSizeScale" json:"fontSizeScale"`
}

// Defaults returns the baseline used at startup and as the reset target.
func Defaults() Settings {
	return Settings{
		ThemeStretch:      false,
		ThemeMode:         ModeLight,
		ThemeDirection:    DirectionLTR,
		ThemeContrast:     ContrastDefault,
		ThemeLayout:       LayoutVertical,
		ThemeColorPresets: PresetDefault,
		FontSizeScale:     1,
	}
}

var orderedKeys = []Key{
	KeyThemeMode,
	KeyThemeContrast,
	KeyThemeDirection,
	KeyThemeLayout,
	KeyThemeStretch,
	KeyThemeColorPresets,
	KeyFontSizeScale,
}

// Keys returns every recognized key in display order.
func Keys() []Key {
	out := make([]Key, len(orderedKeys))
	copy(out, orderedKeys)
	return out
}

// Known reports whether k is a recognized key.
func Known(k Key) bool {
	for _, candidate := range orderedKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// Options returns the enumerated values for key, or nil for free-form keys.
func Options(k Key) []string {
	switch k {
	case KeyThemeMode:
		return []string{string(ModeLight), string(ModeDark)}
	case KeyThemeDirection:
		return []string{string(DirectionLTR), string(DirectionRTL)}
	case KeyThemeContrast:
		return []string{string(ContrastDefault), string(ContrastBold)}
	case KeyThemeLayout:
		return []string{string(LayoutVertical), string(LayoutHorizontal), string(LayoutMini)}
	case KeyThemeColorPresets:
		return []string{
			string(PresetDefault), string(PresetCyan), string(PresetPurple),
			string(PresetBlue), string(PresetOrange), string(PresetRed),
		}
	case KeyThemeStretch:
		return []string{"false", "true"}
	default:
		return nil
	}
}

// Get returns the value stored under k, or nil for unknown keys.
func (s Settings) Get(k Key) any {
	switch k {
	case KeyThemeStretch:
		return s.ThemeStretch
	case KeyThemeMode:
		return s.ThemeMode
	case KeyThemeDirection:
		return s.ThemeDirection
	case KeyThemeContrast:
		return s.ThemeContrast
	case KeyThemeLayout:
		return s.ThemeLayout
	case KeyThemeColorPresets:
		return s.ThemeColorPresets
	case KeyFontSizeScale:
		return s.FontSizeScale
	default:
		return nil
	}
}

// Format renders the value under k for display.
func (s Settings) Format(k Key) string {
	switch v := s.Get(k).(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// With returns a copy of s with k set to value. Enum keys accept either the
// named type or a plain string; values outside the enum are stored as-is.
func (s Settings) With(k Key, value any) (Settings, error) {
	switch k {
	case KeyThemeStretch:
		v, ok := value.(bool)
		if !ok {
			return s, typeError(k, value)
		}
		s.ThemeStretch = v
	case KeyFontSizeScale:
		var scale float64
		switch v := value.(type) {
		case float64:
			scale = v
		case float32:
			scale = float64(v)
		case int:
			scale = float64(v)
		default:
			return s, typeError(k, value)
		}
		if !(scale > 0) {
			return s, fmt.Errorf("%w: got %v", ErrNonPositiveScale, scale)
		}
		s.FontSizeScale = scale
	case KeyThemeMode, KeyThemeDirection, KeyThemeContrast, KeyThemeLayout, KeyThemeColorPresets:
		text, ok := enumText(value)
		if !ok {
			return s, typeError(k, value)
		}
		switch k {
		case KeyThemeMode:
			s.ThemeMode = Mode(text)
		case KeyThemeDirection:
			s.ThemeDirection = Direction(text)
		case KeyThemeContrast:
			s.ThemeContrast = Contrast(text)
		case KeyThemeLayout:
			s.ThemeLayout = Layout(text)
		case KeyThemeColorPresets:
			s.ThemeColorPresets = ColorPreset(text)
		}
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownKey, k)
	}
	return s, nil
}

// ParseValue converts user-entered text into the Go type expected by k.
func ParseValue(k Key, text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	switch k {
	case KeyThemeStretch:
		v, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", k, err)
		}
		return v, nil
	case KeyFontSizeScale:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", k, err)
		}
		return v, nil
	case KeyThemeMode, KeyThemeDirection, KeyThemeContrast, KeyThemeLayout, KeyThemeColorPresets:
		return trimmed, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
	}
}

// Next returns the value that follows the current one for k, wrapping
// around. step is +1 or -1. Unknown current values restart at the first option.
func (s Settings) Next(k Key, step int) any {
	if k == KeyFontSizeScale {
		next := s.FontSizeScale + float64(step)*FontSizeScaleStep
		if next < MinFontSizeScale {
			next = MinFontSizeScale
		}
		if next > MaxFontSizeScale {
			next = MaxFontSizeScale
		}
		// Keep two decimals so repeated steps don't drift.
		rounded, _ := strconv.ParseFloat(strconv.FormatFloat(next, 'f', 2, 64), 64)
		return rounded
	}
	if k == KeyThemeStretch {
		return !s.ThemeStretch
	}
	opts := Options(k)
	if len(opts) == 0 {
		return s.Get(k)
	}
	current := s.Format(k)
	idx := -1
	for i, opt := range opts {
		if opt == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return opts[0]
	}
	idx = (idx + step + len(opts)) % len(opts)
	return opts[idx]
}

func enumText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case Mode:
		return string(v), true
	case Direction:
		return string(v), true
	case Contrast:
		return string(v), true
	case Layout:
		return string(v), true
	case ColorPreset:
		return string(v), true
	default:
		return "", false
	}
}

func typeError(k Key, value any) error {
	return fmt.Errorf("%w: %s got %T", ErrValueType, k, value)
}
