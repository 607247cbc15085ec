package ui

import "github.com/five82/logdeck/internal/state"

// Tab identifies one of the top-level panels.
type Tab int

const (
	TabUpload Tab = iota
	TabUploads
	TabDB
)

var tabOrder = []Tab{TabUpload, TabUploads, TabDB}

func (t Tab) String() string {
	switch t {
	case TabUploads:
		return "uploads"
	case TabDB:
		return "db"
	default:
		return "upload"
	}
}

// Label is the caption shown in the tab bar.
func (t Tab) Label() string {
	switch t {
	case TabUploads:
		return "History"
	case TabDB:
		return "DB Explorer"
	default:
		return "Upload"
	}
}

// Navigator owns which panel is visible. Exactly one tab is active once
// Start has run; before that no panel is shown.
type Navigator struct {
	session *state.Session
	active  Tab
	started bool
}

// NewNavigator returns a navigator that consults session for tab availability.
func NewNavigator(session *state.Session) Navigator {
	return Navigator{session: session}
}

// Started reports whether the initial transition has happened.
func (n Navigator) Started() bool {
	return n.started
}

// Active returns the visible tab.
func (n Navigator) Active() Tab {
	return n.active
}

// Enabled reports whether t can be selected. Only the upload tab survives
// degraded mode.
func (n Navigator) Enabled(t Tab) bool {
	if t == TabUpload {
		return true
	}
	return !n.session.Degraded()
}

// Start performs the initial transition to the upload tab.
func (n *Navigator) Start() {
	n.active = TabUpload
	n.started = true
}

// Select makes t the only active tab. It returns false, changing nothing,
// for a disabled tab or before Start. Re-selecting the active tab returns
// true so the caller reloads it.
func (n *Navigator) Select(t Tab) bool {
	if !n.started || !n.Enabled(t) {
		return false
	}
	n.active = t
	return true
}

// Next returns the following enabled tab, wrapping around.
func (n Navigator) Next() Tab {
	return n.step(1)
}

// Prev returns the preceding enabled tab, wrapping around.
func (n Navigator) Prev() Tab {
	return n.step(-1)
}

func (n Navigator) step(dir int) Tab {
	count := len(tabOrder)
	idx := int(n.active)
	for i := 1; i <= count; i++ {
		t := tabOrder[((idx+dir*i)%count+count)%count]
		if n.Enabled(t) {
			return t
		}
	}
	return n.active
}
