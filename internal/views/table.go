package views

import (
	"fmt"

	"github.com/five82/logdeck/internal/ingest"
)

// TableColumns is the fixed DB explorer schema.
var TableColumns = []string{"ID", "File", "Status", "Created", "Rows"}

// TableLoadingText fills the spanning row while the table loads.
const TableLoadingText = "Loading data..."

// TableState is the DB explorer's own snapshot. It is fetched independently
// of the history view.
type TableState struct {
	Phase   Phase
	Records []ingest.IngestRecord
	Err     error

	gen generation
}

// Begin starts a refresh and returns its generation.
func (s *TableState) Begin() uint64 {
	s.Phase = PhaseLoading
	s.Err = nil
	return s.gen.next()
}

// Finish applies a refresh result unless a newer refresh has started since.
func (s *TableState) Finish(gen uint64, records []ingest.IngestRecord, err error) bool {
	if !s.gen.fresh(gen) {
		return false
	}
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

// TableRow is one rendered record. Cells follow TableColumns.
type TableRow struct {
	Cells      []string
	StatusTone Tone
}

// TablePanel is the render tree for the DB explorer: the header, then either
// one spanning row (loading or error) or zero or more record rows.
type TablePanel struct {
	Columns []string
	Span    *Placeholder
	Rows    []TableRow
}

// RenderTable turns the table state into a render tree.
func RenderTable(s TableState) TablePanel {
	panel := TablePanel{Columns: TableColumns}
	switch s.Phase {
	case PhaseIdle, PhaseLoading:
		panel.Span = &Placeholder{Text: TableLoadingText, Tone: ToneMuted}
		return panel
	case PhaseFailed:
		panel.Span = &Placeholder{Text: ErrorText(s.Err), Tone: ToneDanger}
		return panel
	}
	panel.Rows = make([]TableRow, 0, len(s.Records))
	for _, rec := range s.Records {
		panel.Rows = append(panel.Rows, RenderTableRow(rec))
	}
	return panel
}

// RenderTableRow renders one record into the five table cells.
func RenderTableRow(rec ingest.IngestRecord) TableRow {
	name := string(rec.FileName)
	if name == "" {
		name = "-"
	}
	tone := ToneDanger
	if string(rec.Status) == "success" {
		tone = ToneSuccess
	}
	return TableRow{
		Cells: []string{
			string(rec.ID),
			name,
			string(rec.Status),
			FormatCreatedAt(rec.CreatedAt),
			fmt.Sprintf("%d / %d", rec.InsertedRows, rec.TotalRows),
		},
		StatusTone: tone,
	}
}
