// Package app is the composition root for the logdeck TUI.
//
// Run loads nothing on its own: the caller (cmd/logdeck) resolves the
// configuration from file, environment and flags, and Run wires the pieces
// together:
//
//	logging.New()      file logger (the TUI owns the terminal)
//	Dial()             ingest.Client for the configured backend
//	state.NewSession() availability, written once by the startup probe
//	state.NewMonitor() startup probe, run by the UI as its first command
//	ui.Run()           Bubble Tea program (blocks)
//
// Preferences are read once at startup. A missing or malformed prefs file
// never blocks the UI.
package app
