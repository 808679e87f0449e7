package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the drawer.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Drawer key.Binding
	Logs   key.Binding
	Escape key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Editing
	Next     key.Binding
	Prev     key.Binding
	FontUp   key.Binding
	FontDown key.Binding
	Reset    key.Binding
	Save     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Toggle help"),
		),
		Drawer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open/close settings"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Sync log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close drawer"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "Previous setting"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "Next setting"),
		),

		Next: key.NewBinding(
			key.WithKeys("right", "l", "enter", " "),
			key.WithHelp("→/enter", "Next value"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous value"),
		),
		FontUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Larger text"),
		),
		FontDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Smaller text"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset to defaults"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save now"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drawer, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.FontUp, k.FontDown, k.Reset, k.Save},
		{k.Drawer, k.Escape, k.Logs, k.Help, k.Quit},
	}
}
