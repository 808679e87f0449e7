package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/settingsync/internal/settings"
)

// BgStyle renders text segments on a shared background. lipgloss resets
// between styled segments otherwise leave gaps in the background color.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render applies style plus the shared background to text.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(b.bg).Render(text)
}

// Join joins parts with n styled spaces.
func (b BgStyle) Join(parts []string, n int) string {
	return strings.Join(parts, strings.Repeat(b.space, n))
}

// Drawer width when stretch is off.
const compactWidth = 64

// contentWidth is the usable width for s on a terminal of the given width.
func contentWidth(s settings.Settings, termWidth int) int {
	if termWidth <= 0 {
		return compactWidth
	}
	if s.ThemeStretch || termWidth < compactWidth {
		return termWidth
	}
	return compactWidth
}

// alignFor maps the text direction to a horizontal alignment.
func alignFor(s settings.Settings) lipgloss.Position {
	if s.ThemeDirection == settings.DirectionRTL {
		return lipgloss.Right
	}
	return lipgloss.Left
}

// scaleBar draws the font scale as a filled gauge of the given width.
func scaleBar(scale float64, width int) string {
	if width <= 0 {
		return ""
	}
	span := settings.MaxFontSizeScale - settings.MinFontSizeScale
	frac := (scale - settings.MinFontSizeScale) / span
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

func truncate(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	if width <= 1 {
		return string(runes[:width])
	}
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}
