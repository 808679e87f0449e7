package settings

// Remote mirrors the payload served by the remote settings endpoint.
type Remote struct {
	Theme RemoteTheme `json:"theme"`
}

// RemoteTheme is the server's view of the theme fields. Nil means the server
// did not send the field (or sent null).
type RemoteTheme struct {
	ThemeStretch      *bool        `json:"themeStretch,omitempty"`
	ThemeMode         *Mode        `json:"themeMode,omitempty"`
	ThemeDirection    *Direction   `json:"themeDirection,omitempty"`
	ThemeContrast     *Contrast    `json:"themeContrast,omitempty"`
	ThemeLayout       *Layout      `json:"themeLayout,omitempty"`
	ThemeColorPresets *ColorPreset `json:"themeColorPresets,omitempty"`
	FontSizeScale     *float64     `json:"fontSizeScale,omitempty"`
}

// ThemePayload is the body accepted by the remote update call.
type ThemePayload struct {
	Theme Theme `json:"theme"`
}

// Theme is the server-recognized subset of Settings, always fully populated
// on write.
type Theme struct {
	FontSizeScale     float64     `json:"fontSizeScale"`
	ThemeColorPresets ColorPreset `json:"themeColorPresets"`
	ThemeContrast     Contrast    `json:"themeContrast"`
	ThemeDirection    Direction   `json:"themeDirection"`
	ThemeLayout       Layout      `json:"themeLayout"`
	ThemeMode         Mode        `json:"themeMode"`
	ThemeStretch      bool        `json:"themeStretch"`
}

// Theme extracts the server-recognized subset of s.
func (s Settings) Theme() Theme {
	return Theme{
		FontSizeScale:     s.FontSizeScale,
		ThemeColorPresets: s.ThemeColorPresets,
		ThemeContrast:     s.ThemeContrast,
		ThemeDirection:    s.ThemeDirection,
		ThemeLayout:       s.ThemeLayout,
		ThemeMode:         s.ThemeMode,
		ThemeStretch:      s.ThemeStretch,
	}
}

// Merge overlays every non-nil field of t onto local and reports which keys
// actually changed. Fields equal to the local value are skipped.
func (t RemoteTheme) Merge(local Settings) (Settings, []Key) {
	merged := local
	var changed []Key

	if t.ThemeStretch != nil && *t.ThemeStretch != merged.ThemeStretch {
		merged.ThemeStretch = *t.ThemeStretch
		changed = append(changed, KeyThemeStretch)
	}
	if t.ThemeMode != nil && *t.ThemeMode != merged.ThemeMode {
		merged.ThemeMode = *t.ThemeMode
		changed = append(changed, KeyThemeMode)
	}
	if t.ThemeDirection != nil && *t.ThemeDirection != merged.ThemeDirection {
		merged.ThemeDirection = *t.ThemeDirection
		changed = append(changed, KeyThemeDirection)
	}
	if t.ThemeContrast != nil && *t.ThemeContrast != merged.ThemeContrast {
		merged.ThemeContrast = *t.ThemeContrast
		changed = append(changed, KeyThemeContrast)
	}
	if t.ThemeLayout != nil && *t.ThemeLayout != merged.ThemeLayout {
		merged.ThemeLayout = *t.ThemeLayout
		changed = append(changed, KeyThemeLayout)
	}
	if t.ThemeColorPresets != nil && *t.ThemeColorPresets != merged.ThemeColorPresets {
		merged.ThemeColorPresets = *t.ThemeColorPresets
		changed = append(changed, KeyThemeColorPresets)
	}
	if t.FontSizeScale != nil && *t.FontSizeScale > 0 && *t.FontSizeScale != merged.FontSizeScale {
		merged.FontSizeScale = *t.FontSizeScale
		changed = append(changed, KeyFontSizeScale)
	}
	return merged, changed
}

// RemoteFrom builds a fully populated RemoteTheme from s. Useful for tests
// and for echoing local state back in the same shape as a fetch.
func RemoteFrom(s Settings) Remote {
	stretch := s.ThemeStretch
	mode := s.ThemeMode
	dir := s.ThemeDirection
	contrast := s.ThemeContrast
	layout := s.ThemeLayout
	preset := s.ThemeColorPresets
	scale := s.FontSizeScale
	return Remote{Theme: RemoteTheme{
		ThemeStretch:      &stretch,
		ThemeMode:         &mode,
		ThemeDirection:    &dir,
		ThemeContrast:     &contrast,
		ThemeLayout:       &layout,
		ThemeColorPresets: &preset,
		FontSizeScale:     &scale,
	}}
}
