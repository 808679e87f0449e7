package settings

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

// Validate reports values the renderer will not honour. Writes never call
// it; it exists for display-time checks.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ThemeMode, validation.Required, validation.In(ModeLight, ModeDark)),
		validation.Field(&s.ThemeDirection, validation.Required, validation.In(DirectionLTR, DirectionRTL)),
		validation.Field(&s.ThemeContrast, validation.Required, validation.In(ContrastDefault, ContrastBold)),
		validation.Field(&s.ThemeLayout, validation.Required,
			validation.In(LayoutVertical, LayoutHorizontal, LayoutMini)),
		validation.Field(&s.ThemeColorPresets, validation.Required,
			validation.In(PresetDefault, PresetCyan, PresetPurple, PresetBlue, PresetOrange, PresetRed)),
		validation.Field(&s.FontSizeScale, validation.Required,
			validation.Min(MinFontSizeScale), validation.Max(MaxFontSizeScale)),
	)
}

// rtlBase is the only language rendered right-to-left.
var rtlBase = language.MustParseBase("ar")

// DirectionFor maps a language tag to a text direction. Arabic (any region)
// is right-to-left; anything else, including unparseable tags, is left-to-right.
func DirectionFor(lang string) Direction {
	trimmed := strings.TrimSpace(lang)
	if trimmed == "" {
		return DirectionLTR
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return DirectionLTR
	}
	base, _ := tag.Base()
	if base == rtlBase {
		return DirectionRTL
	}
	return DirectionLTR
}
