// Package state holds the backend availability shared by the navigator and
// the views.
//
// # Overview
//
// logdeck runs one health probe at startup. When the backend answers with a
// database-unavailable error the session is marked degraded for the rest of
// the process: the history and DB explorer tabs are disabled and the history
// area shows a persistent "Database disconnected." message. There is no
// recovery probe.
//
// # Core Types
//
// Session:
//   - Availability flag plus the reason it degraded
//   - Written at most once; the first MarkDegraded wins
//   - Guarded by a mutex because the probe runs inside a tea.Cmd goroutine
//   - Nil-safe readers, so views built without a session read "available"
//
// Monitor:
//   - Issues a single ListIngests call and discards the records
//   - Only *ingest.DatabaseUnavailableError degrades the session
//   - Any other error is logged at warn and returned in ProbeResult
//
// # Usage Example
//
//	session := state.NewSession()
//	monitor := state.NewMonitor(client, session, logger)
//	res := monitor.Probe(ctx)
//	if session.Degraded() {
//		// disable the tabs that need the database
//	}
//	_ = res
//
// The session is created by the composition root and injected into the UI;
// there is no package-level instance.
package state
