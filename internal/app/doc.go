// Package app is the composition root for settingsync.
//
// # Overview
//
// Open wires configuration, logging, the auth token, the HTTP client, the
// remote fetch query and the synchronizer into a Session. CLI commands use a
// Session directly; Run adds the background poller and the TUI drawer.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()        config.toml + SETTINGSYNC_* env
//	       ├─────> logging.New()        zap JSON logger
//	       ├─────> auth.LoadToken()     bearer token (env wins)
//	       ├─────> api.NewClient()      GET/PUT /api/user/settings
//	       ├─────> state.NewQuery()     deduplicated fetch, gated on auth
//	       └─────> syncer.New()         local-first settings + debounced save
//
//	Run() then:
//	       ├─────> StartPoller()        periodic Refresh with backoff
//	       └─────> ui.Run()             Bubble Tea drawer (blocks)
//
// # Polling Behavior
//
// The poller refreshes immediately, then every RefreshEvery. Consecutive
// failures double the wait up to five minutes. A successful fetch resets the
// cadence. Unauthenticated sessions refresh as a no-op.
//
// # Error Handling
//
// Config, token file and client construction errors are fatal and returned
// from Open. Fetch and save failures are recorded in the synchronizer's
// Status and the log; the session keeps running on local settings.
//
// # Offline Mode
//
// Options.Offline swaps the auth signal for a constant false. Settings still
// persist locally but nothing is fetched or uploaded.
package app
