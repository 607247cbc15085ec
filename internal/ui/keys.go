package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Refresh    key.Binding

	// Tab switching
	ViewUpload  key.Binding
	ViewHistory key.Binding
	ViewDB      key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// History
	Select key.Binding

	// Upload
	FocusInput key.Binding
	Submit     key.Binding
	Blur       key.Binding

	// DB explorer
	Export key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload tab"),
		),

		ViewUpload: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Upload"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "History"),
		),
		ViewDB: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "DB explorer"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Scroll logs up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Scroll logs down"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Open logs"),
		),

		FocusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "Edit path"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Start upload"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave path input"),
		),

		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export xlsx"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.ViewUpload, k.ViewHistory, k.ViewDB, k.Refresh},
		{k.FocusInput, k.Submit, k.Blur},
		{k.Up, k.Down, k.Top, k.Bottom, k.Select, k.HalfPageDown, k.HalfPageUp},
		{k.Export},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
