// Package ui is logdeck's Bubble Tea terminal interface.
//
// # Layout
//
// The screen is a header with the tab bar, a command bar with key hints, the
// active panel, and a one-line status bar. Three tabs exist:
//
//   - Upload: a path input, the submit control, the upload result, and a
//     preview of the last lines of the chosen local file
//   - History: the ingest list beside the log viewer for the selected ingest
//   - DB Explorer: every ingest record as a table, exportable to xlsx
//
// # Navigation
//
// Navigator holds the active tab. Nothing is shown until the startup probe
// settles; the screen shows a "Checking backend…" splash meanwhile. When the
// probe finds the database unavailable, the History and DB Explorer tabs are
// disabled and selecting them does nothing. Entering a data tab, including
// re-entering the active one, always re-fetches.
//
// # Data Flow
//
// All backend calls run inside tea.Cmds and report back as messages. Each
// data view stamps its requests with a generation from package views, and
// responses from superseded requests are dropped, so the last request issued
// wins regardless of arrival order.
//
// Rendering goes through the pure render trees in package views; this package
// only maps those trees onto lipgloss styles from the active Theme.
package ui
