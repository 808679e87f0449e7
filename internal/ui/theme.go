package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/settingsync/internal/settings"
)

// Theme defines colors for the drawer. It is derived from the settings being
// edited so every change is visible immediately.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	SurfaceAlt string

	// Selection
	SelectionBg   string
	SelectionText string

	Border string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Bold renders body text in bold (high contrast).
	Bold bool
}

// Accent colors per preset.
var presetAccents = map[settings.ColorPreset]string{
	settings.PresetDefault: "#00A76F",
	settings.PresetCyan:    "#078DEE",
	settings.PresetPurple:  "#7635DC",
	settings.PresetBlue:    "#2065D1",
	settings.PresetOrange:  "#FDA92D",
	settings.PresetRed:     "#FF3030",
}

// ThemeFor builds the palette for s. Unknown modes fall back to light and
// unknown presets to the default accent.
func ThemeFor(s settings.Settings) Theme {
	var t Theme
	if s.ThemeMode == settings.ModeDark {
		t = darkTheme()
	} else {
		t = lightTheme()
	}

	accent, ok := presetAccents[s.ThemeColorPresets]
	if !ok {
		accent = presetAccents[settings.PresetDefault]
	}
	t.Accent = accent
	t.SelectionBg = accent

	if s.ThemeContrast == settings.ContrastBold {
		t.Name += "-bold"
		t.Faint = t.Muted
		t.Muted = t.Text
		t.Bold = true
	}
	return t
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(t.Bold),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Surface lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

func lightTheme() Theme {
	// Neutral grey ramp on white.
	return Theme{
		Name: "light",

		Background: "#FFFFFF",
		Surface:    "#F4F6F8",
		SurfaceAlt: "#F9FAFB",

		SelectionText: "#FFFFFF",

		Border: "#DFE3E8",

		Text:    "#1C252E",
		Muted:   "#637381",
		Faint:   "#919EAB",
		Success: "#22C55E",
		Warning: "#FFAB00",
		Danger:  "#FF5630",
		Info:    "#00B8D9",
	}
}

func darkTheme() Theme {
	return Theme{
		Name: "dark",

		Background: "#141A21",
		Surface:    "#1C252E",
		SurfaceAlt: "#212B36",

		SelectionText: "#FFFFFF",

		Border: "#454F5B",

		Text:    "#FFFFFF",
		Muted:   "#919EAB",
		Faint:   "#637381",
		Success: "#22C55E",
		Warning: "#FFAB00",
		Danger:  "#FF5630",
		Info:    "#00B8D9",
	}
}
