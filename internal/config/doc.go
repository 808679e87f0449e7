// Package config loads settingsync's client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/settingsync/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply SETTINGSYNC_* environment overrides (a .env file in the working
//     directory is loaded by the CLI before Load runs)
//
// # Default Values
//
//   - Config file: ~/.config/settingsync/config.toml
//   - API URL: http://127.0.0.1:8080
//   - Token file: ~/.config/settingsync/token
//   - Settings mirror: ~/.config/settingsync/settings.toml
//   - Log file: ~/.local/state/settingsync/settingsync.log
//   - Debounce: 1500ms
//   - Remote refresh: 30s
//
// # Example config.toml
//
//	api_url = "https://api.example.com"
//	token_file = "~/.config/settingsync/token"
//	settings_path = "~/.config/settingsync/settings.toml"
//	log_path = "~/.local/state/settingsync/settingsync.log"
//	debounce_ms = 1500
//	refresh_seconds = 30
//
// # Secrets
//
// The bearer token is never read from config.toml. It comes from
// SETTINGSYNC_TOKEN or the token file, so the config can be shared safely.
//
// # Validation
//
// Validate rejects non-HTTP API URLs, an empty settings path, a debounce
// below 100ms and a refresh interval below one second.
package config
