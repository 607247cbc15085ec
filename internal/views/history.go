package views

import (
	"fmt"

	"github.com/five82/logdeck/internal/ingest"
)

// History placeholder texts.
const (
	HistoryLoadingText      = "Loading history..."
	HistoryEmptyText        = "No uploads found."
	HistoryDisconnectedText = "Database disconnected."
)

// HistoryState is the ingest-history view's own snapshot. Selection is
// transient and purely visual.
type HistoryState struct {
	Phase        Phase
	Records      []ingest.IngestRecord
	Err          error
	Selected     int
	Disconnected bool

	gen generation
}

// NewHistoryState returns an idle state with nothing selected.
func NewHistoryState() HistoryState {
	return HistoryState{Selected: -1}
}

// Begin starts a refresh and returns its generation.
func (s *HistoryState) Begin() uint64 {
	s.Phase = PhaseLoading
	s.Err = nil
	return s.gen.next()
}

// Finish applies a refresh result. Results from a superseded refresh are
// dropped; Finish reports whether the result was applied.
func (s *HistoryState) Finish(gen uint64, records []ingest.IngestRecord, err error) bool {
	if !s.gen.fresh(gen) {
		return false
	}
	s.Selected = -1
	if err != nil {
		s.Phase = PhaseFailed
		s.Err = err
		s.Records = nil
		return true
	}
	s.Phase = PhaseReady
	s.Records = records
	return true
}

// Select marks entry i as the only selected entry and returns its id.
func (s *HistoryState) Select(i int) (ingest.ID, bool) {
	if s.Phase != PhaseReady || i < 0 || i >= len(s.Records) {
		return "", false
	}
	s.Selected = i
	return s.Records[i].ID, true
}

// HistoryEntry is one rendered history row.
type HistoryEntry struct {
	ID        ingest.ID
	FileName  string
	CreatedAt string
	Badge     string
	Selected  bool
}

// HistoryPanel is the render tree for the history list: either a placeholder
// or a list of entries.
type HistoryPanel struct {
	Placeholder *Placeholder
	Entries     []HistoryEntry
}

// RenderHistory turns the history state into a render tree.
func RenderHistory(s HistoryState) HistoryPanel {
	if s.Disconnected {
		return HistoryPanel{Placeholder: &Placeholder{Text: HistoryDisconnectedText, Tone: ToneDanger}}
	}
	switch s.Phase {
	case PhaseIdle, PhaseLoading:
		return HistoryPanel{Placeholder: &Placeholder{Text: HistoryLoadingText, Tone: ToneMuted}}
	case PhaseFailed:
		return HistoryPanel{Placeholder: &Placeholder{Text: ErrorText(s.Err), Tone: ToneDanger}}
	}
	if len(s.Records) == 0 {
		return HistoryPanel{Placeholder: &Placeholder{Text: HistoryEmptyText, Tone: ToneMuted}}
	}
	entries := make([]HistoryEntry, 0, len(s.Records))
	for i, rec := range s.Records {
		name := string(rec.FileName)
		if name == "" {
			name = "Unknown"
		}
		entries = append(entries, HistoryEntry{
			ID:        rec.ID,
			FileName:  name,
			CreatedAt: FormatCreatedAt(rec.CreatedAt),
			Badge:     fmt.Sprintf("%d rows", rec.InsertedRows),
			Selected:  i == s.Selected,
		})
	}
	return HistoryPanel{Entries: entries}
}
