package views

import (
	"strings"

	"github.com/five82/logdeck/internal/ingest"
)

// Upload form texts.
const (
	UploadIdleLabel   = "Start Upload"
	UploadBusyLabel   = "Uploading..."
	UploadPendingText = "Processing..."
	UploadAlertText   = "Please choose a file first"
)

// UploadState is the upload form's state.
type UploadState struct {
	Busy   bool
	Shown  bool
	Result ingest.UploadResult
	Err    error
}

// Begin validates the chosen path and switches the form to busy. It returns
// false, leaving the state untouched, when no file was chosen.
func (s *UploadState) Begin(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	s.Busy = true
	s.Shown = true
	s.Err = nil
	s.Result = ingest.UploadResult{}
	return true
}

// Finish records the upload outcome and restores the submit control.
func (s *UploadState) Finish(res ingest.UploadResult, err error) {
	s.Busy = false
	s.Result = res
	s.Err = err
}

// UploadPanel is the render tree for the upload form.
type UploadPanel struct {
	ButtonLabel    string
	ButtonDisabled bool
	// Result is nil until the first submit.
	Result *Placeholder
}

// RenderUpload turns the upload state into a render tree.
func RenderUpload(s UploadState) UploadPanel {
	panel := UploadPanel{ButtonLabel: UploadIdleLabel}
	if s.Busy {
		panel.ButtonLabel = UploadBusyLabel
		panel.ButtonDisabled = true
	}
	switch {
	case !s.Shown:
	case s.Busy:
		panel.Result = &Placeholder{Text: UploadPendingText, Tone: ToneMuted}
	case s.Err != nil:
		panel.Result = &Placeholder{Text: ErrorText(s.Err), Tone: ToneDanger}
	default:
		panel.Result = &Placeholder{Text: s.Result.Pretty(), Tone: ToneDefault}
	}
	return panel
}
