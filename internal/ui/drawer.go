package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/settingsync/internal/settings"
)

// Row labels, short forms used by the mini layout.
var keyLabels = map[settings.Key][2]string{
	settings.KeyThemeMode:         {"Mode", "mode"},
	settings.KeyThemeContrast:     {"Contrast", "ctr"},
	settings.KeyThemeDirection:    {"Direction", "dir"},
	settings.KeyThemeLayout:       {"Layout", "lay"},
	settings.KeyThemeStretch:      {"Stretch", "str"},
	settings.KeyThemeColorPresets: {"Presets", "pre"},
	settings.KeyFontSizeScale:     {"Font size", "font"},
}

func labelFor(k settings.Key, mini bool) string {
	l, ok := keyLabels[k]
	if !ok {
		return string(k)
	}
	if mini {
		return l[1]
	}
	return l[0]
}

// renderHeader renders the title and sync status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	width := m.width

	parts := []string{bg.Render("settingsync", styles.Logo)}
	parts = append(parts, m.statusParts(styles, bg)...)

	content := bg.Join(parts, 2)
	return styles.Header.Width(width).Render(content)
}

// statusParts describes auth, saving and fetching state.
func (m Model) statusParts(styles Styles, bg BgStyle) []string {
	st := m.status
	var parts []string

	switch {
	case !st.Authenticated:
		parts = append(parts, bg.Render("○ local only", styles.MutedText))
	case st.Saving:
		parts = append(parts, bg.Render("● saving…", styles.WarningText))
	case st.Pending:
		parts = append(parts, bg.Render("● pending", styles.InfoText))
	case st.Offline:
		parts = append(parts, bg.Render("● offline", styles.DangerText))
	default:
		parts = append(parts, bg.Render("● synced", styles.SuccessText))
	}

	if st.Fetching {
		parts = append(parts, bg.Render("fetching", styles.InfoText))
	}
	if m.current.ThemeLayout == settings.LayoutMini {
		return parts
	}

	if !st.LastSavedAt.IsZero() {
		parts = append(parts, bg.Render("saved "+st.LastSavedAt.Format("15:04:05"), styles.MutedText))
	}
	if st.FetchErr != nil {
		parts = append(parts, bg.Render(truncate(st.FetchErr.Error(), 40), styles.DangerText))
	}
	if m.lastErr != nil {
		parts = append(parts, bg.Render(truncate(m.lastErr.Error(), 40), styles.DangerText))
	} else if m.flash != "" {
		parts = append(parts, bg.Render(m.flash, styles.FaintText))
	}
	return parts
}

// renderDrawer renders every setting with its current value.
func (m Model) renderDrawer() string {
	styles := m.theme.Styles()
	mini := m.current.ThemeLayout == settings.LayoutMini
	width := contentWidth(m.current, m.width)
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	labelWidth := 12
	if mini {
		labelWidth = 6
	}

	keys := settings.Keys()
	rows := make([]string, 0, len(keys)+2)
	title := styles.AccentText.Render("Settings")
	if m.sync.CanReset() {
		title += "  " + styles.FaintText.Render("(r to reset)")
	}
	rows = append(rows, title)

	for i, k := range keys {
		label := lipgloss.NewStyle().Width(labelWidth).Render(labelFor(k, mini))
		value := m.renderValue(k, inner-labelWidth-2)
		line := label + "  " + value
		if i == m.selected {
			line = styles.Selected.Width(inner).Render(line)
		} else {
			line = styles.Text.Width(inner).Render(line)
		}
		rows = append(rows, line)
	}

	body := m.joinRows(rows, inner)
	return styles.Panel.Width(width - 2).Render(body)
}

// joinRows stacks rows vertically, or in pairs for the horizontal layout.
func (m Model) joinRows(rows []string, width int) string {
	align := alignFor(m.current)
	if m.current.ThemeLayout == settings.LayoutHorizontal && len(rows) > 2 {
		half := width / 2
		var out []string
		out = append(out, rows[0])
		items := rows[1:]
		for i := 0; i < len(items); i += 2 {
			left := lipgloss.NewStyle().MaxWidth(half).Render(items[i])
			right := ""
			if i+1 < len(items) {
				right = lipgloss.NewStyle().MaxWidth(half).Render(items[i+1])
			}
			out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
		}
		rows = out
	}
	return lipgloss.NewStyle().Width(width).Align(align).Render(strings.Join(rows, "\n"))
}

// renderValue shows the current value and, for enums, the available options.
func (m Model) renderValue(k settings.Key, width int) string {
	styles := m.theme.Styles()
	if k == settings.KeyFontSizeScale {
		pct := fmt.Sprintf("%3.0f%%", m.current.FontSizeScale*100)
		return styles.Text.Render(pct) + " " + styles.AccentText.Render(scaleBar(m.current.FontSizeScale, 10))
	}

	current := m.current.Format(k)
	opts := settings.Options(k)
	if len(opts) == 0 || m.current.ThemeLayout == settings.LayoutMini {
		return current
	}

	parts := make([]string, 0, len(opts))
	for _, opt := range opts {
		if opt == current {
			parts = append(parts, "["+opt+"]")
		} else {
			parts = append(parts, opt)
		}
	}
	return truncate(strings.Join(parts, " "), width)
}

// renderLogs renders the sync log pane.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Render("Sync log")
	if len(m.logCache) == 0 {
		return title + "\n" + styles.FaintText.Render("No log entries yet")
	}
	return title + "\n" + m.logView.View()
}
