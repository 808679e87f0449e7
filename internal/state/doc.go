// Package state tracks the remote settings snapshot and the status of the
// fetches that produce it.
//
// # Overview
//
// The synchronizer treats the remote read path as an external collaborator:
// something else decides when to fetch, owns the caching and reports errors.
// This package is that collaborator. It has two pieces:
//
//   - Store: a mutex-guarded Snapshot (latest remote payload, in-flight flag,
//     last error, consecutive failure count)
//   - Query: runs the fetch, records the outcome in the Store and fans the
//     payload out to subscribers
//
// # Data Flow
//
//	 poller / save / pull             Query.Refresh(ctx)
//	┌────────────────────┐           ┌──────────────────────────┐
//	│ Refresh(ctx)       │──────────→│ singleflight "settings"  │
//	└────────────────────┘           │  ├─> store.Begin()       │
//	                                 │  ├─> fetch(ctx)          │
//	                                 │  ├─> store.Update(...)   │
//	                                 │  └─> notify(listeners)   │
//	                                 └────────────┬─────────────┘
//	                                              │
//	                                              ↓
//	                                 syncer.ApplyRemote(remote)
//
// # Update Semantics
//
// Same rules as the rest of the client:
//
//	// Success: replace the payload, clear the error
//	store.Update(&remote, nil)
//
//	// Error: keep the old payload, record the error
//	store.Update(nil, err)
//
// The UI can keep rendering the last good snapshot while showing that the
// latest fetch failed. After two consecutive failures IsOffline reports true.
//
// # Retries
//
// Query never retries. The app poller decides when to try again, and it backs
// off while failures pile up. A failed fetch leaves local settings untouched.
//
// # Gating
//
// NewQuery takes an enabled func. The app passes the auth signal, so nothing
// is fetched while the user is logged out.
package state
