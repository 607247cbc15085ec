package views

import (
	"strings"
	"time"

	"github.com/five82/logdeck/internal/ingest"
)

// Tone is the semantic styling of a rendered node. The terminal renderer maps
// tones to theme colors.
type Tone int

const (
	ToneDefault Tone = iota
	ToneMuted
	ToneSuccess
	ToneWarning
	ToneDanger
	ToneInfo
)

// Placeholder is a single message occupying a whole panel or list area.
type Placeholder struct {
	Text string
	Tone Tone
}

// Phase tracks where a view's fetch stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// DateTimeLayout is used for every created_at cell.
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatCreatedAt renders a created_at value in local time, "-" when absent.
// Values in an unknown layout are shown as received.
func FormatCreatedAt(raw ingest.Text) string {
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return "-"
	}
	rec := ingest.IngestRecord{CreatedAt: raw}
	if t := rec.ParsedCreatedAt(); !t.IsZero() {
		return t.In(time.Local).Format(DateTimeLayout)
	}
	return value
}

// ErrorText renders an error the way every view shows it.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// generation hands out request generations and recognises stale responses.
type generation struct {
	current uint64
}

func (g *generation) next() uint64 {
	g.current++
	return g.current
}

func (g *generation) fresh(gen uint64) bool {
	return gen == g.current
}
