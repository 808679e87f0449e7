// Package syncer keeps the user's presentation settings local-first and
// eventually consistent with the server.
//
// # Overview
//
// A Synchronizer owns one settings.Settings record. Every write goes to
// memory and to the durable local mirror before the call returns, so a
// restart never loses a change. While the user is authenticated, writes also
// arm a debounced remote save that uploads the whole record once the user
// stops changing things for Delay (1.5s by default).
//
// # Write Path
//
//	Update(key, value)
//	  ├─> current = current.With(key, value)
//	  ├─> storage.Save(current)           synchronous
//	  ├─> timer.Cancel()                  drop the previous pending save
//	  ├─> timer.Schedule(save)            only when authenticated
//	  └─> notify subscribers              only when the record changed
//
//	timer fires → save(ctx)
//	  ├─> saver.SaveSettings(current)     Saving = true for the duration
//	  ├─> LastSavedAt = now               on success
//	  └─> remote.Refresh(ctx)             pick up server-side normalization
//
// Ten Updates inside the window produce one upload carrying the state at
// fire time. Intermediate states never reach the server.
//
// # Read Path
//
// The Remote collaborator (state.Query in the app) delivers server snapshots
// to ApplyRemote. Non-nil fields that differ from the local value are written
// to memory and storage. Nothing is scheduled, so a fetch can never trigger
// another save. A snapshot equal to local state is a complete no-op: no
// storage write and no notification.
//
// # Failures
//
//   - Local storage: the error is logged and returned from Update/Reset. The
//     in-memory change is kept.
//   - Remote save: logged, Saving cleared, no retry or rollback. The next
//     Update or SaveNow tries again.
//   - Remote fetch: recorded by the Remote collaborator and surfaced through
//     Status().FetchErr.
//   - Unauthenticated: saves are a silent no-op.
//
// # Teardown
//
// Close stops the debounce timer so no save fires afterwards. It detaches
// from the Remote and waits for any upload already on the wire. In-flight
// requests are not cancelled.
package syncer
