// Package ui provides the terminal settings drawer for settingsync.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. It never owns settings state: every
// edit goes through the synchronizer, and the model re-reads the record when
// the synchronizer notifies it. The palette is rebuilt from the record after
// each change, so mode, contrast and color preset show up immediately.
//
// # Package Structure
//
//   - app.go: Model, Update loop, commands and Run
//   - drawer.go: header status line, settings rows and log pane
//   - theme.go: light/dark palettes and lipgloss styles derived from settings
//   - keys.go: key bindings (bubbles/key) and help groups
//   - help.go: full-screen help overlay
//   - style_helpers.go: background-safe rendering and layout helpers
//
// # How Settings Map to the Terminal
//
//   - themeMode: light or dark palette
//   - themeContrast: bold body text and brighter secondary text
//   - themeColorPresets: accent color for the title, gauge and selection
//   - themeDirection: rtl right-aligns the drawer
//   - themeLayout: vertical rows, two-column horizontal, or compact mini
//   - themeStretch: the drawer fills the terminal width instead of 64 columns
//   - fontSizeScale: shown as a percentage and gauge
//
// # Refresh Model
//
// A tick polls the synchronizer's Status (auth, saving, pending, fetch
// state). Settings changes arrive through Subscribe as a settingsChangedMsg
// sent from a separate goroutine, since listeners can fire while the event
// loop itself is handling a key.
package ui
