package ui

import (
	"testing"

	"github.com/five82/logdeck/internal/state"
)

func TestNavigator_SelectBeforeStartIsIgnored(t *testing.T) {
	n := NewNavigator(state.NewSession())
	if n.Select(TabDB) {
		t.Fatalf("Select before Start returned true")
	}
	if n.Started() {
		t.Fatalf("Started() = true before Start")
	}
}

func TestNavigator_SelectExactlyOneActive(t *testing.T) {
	n := NewNavigator(state.NewSession())
	n.Start()
	if n.Active() != TabUpload {
		t.Fatalf("initial Active() = %v, want upload", n.Active())
	}

	for _, tab := range []Tab{TabUploads, TabDB, TabUpload, TabUpload} {
		if !n.Select(tab) {
			t.Fatalf("Select(%v) = false", tab)
		}
		if n.Active() != tab {
			t.Fatalf("Active() = %v, want %v", n.Active(), tab)
		}
	}
}

func TestNavigator_DegradedDisablesDataTabs(t *testing.T) {
	session := state.NewSession()
	session.MarkDegraded("database down")
	n := NewNavigator(session)
	n.Start()

	if n.Enabled(TabUploads) || n.Enabled(TabDB) {
		t.Fatalf("data tabs enabled while degraded")
	}
	if !n.Enabled(TabUpload) {
		t.Fatalf("upload tab disabled while degraded")
	}
	if n.Select(TabUploads) || n.Select(TabDB) {
		t.Fatalf("Select on a disabled tab returned true")
	}
	if n.Active() != TabUpload {
		t.Fatalf("Active() = %v, want upload", n.Active())
	}
	if n.Next() != TabUpload || n.Prev() != TabUpload {
		t.Fatalf("cycling left upload while degraded: next=%v prev=%v", n.Next(), n.Prev())
	}
}

func TestNavigator_Cycle(t *testing.T) {
	n := NewNavigator(state.NewSession())
	n.Start()

	if got := n.Next(); got != TabUploads {
		t.Fatalf("Next() = %v, want uploads", got)
	}
	if got := n.Prev(); got != TabDB {
		t.Fatalf("Prev() = %v, want db", got)
	}
	n.Select(TabDB)
	if got := n.Next(); got != TabUpload {
		t.Fatalf("Next() from db = %v, want upload", got)
	}
}
