package views

import (
	"fmt"
	"strings"

	"github.com/five82/logdeck/internal/ingest"
)

// Log viewer placeholder texts.
const (
	LogsIdleText    = "Select an upload to view its logs"
	LogsLoadingText = "Loading logs..."
	LogsEmptyText   = "No logs found in this file."
)

// LogClass is the severity class of one rendered line.
type LogClass int

const (
	LogDefault LogClass = iota
	LogInfo
	LogWarning
	LogError
)

func (c LogClass) String() string {
	switch c {
	case LogError:
		return "error"
	case LogWarning:
		return "warning"
	case LogInfo:
		return "info"
	default:
		return "default"
	}
}

// FormatLogLine builds "{timestamp} [{level}] {module} - {message}". Absent
// fields are empty and the level defaults to UNK.
func FormatLogLine(line ingest.LogLine) string {
	level := string(line.Level)
	if level == "" {
		level = "UNK"
	}
	return fmt.Sprintf("%s [%s] %s - %s", line.Timestamp, level, line.Module, line.Message)
}

// Classify scans the lowercased text: error/fail, then warn, then info.
// The match is a plain substring heuristic, so "error" anywhere in a message
// wins over an INFO level.
func Classify(text string) LogClass {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "fail"):
		return LogError
	case strings.Contains(lower, "warn"):
		return LogWarning
	case strings.Contains(lower, "info"):
		return LogInfo
	default:
		return LogDefault
	}
}

// LogState is the log viewer's own snapshot.
type LogState struct {
	Phase    Phase
	IngestID ingest.ID
	Lines    []ingest.LogLine
	Err      error

	gen generation
}

// Begin starts loading logs for id and returns the request generation.
func (s *LogState) Begin(id ingest.ID) uint64 {
	s.Phase = PhaseLoading
	s.IngestID = id
	s.Lines = nil
	s.Err = nil
	return s.gen.next()
}

// Finish applies a fetch result unless a newer load has started since.
func (s *LogState) Finish(gen uint64, lines []ingest.LogLine, err error) bool {
	if !s.gen.fresh(gen) {
		return false
	}
	if err != nil {
		s.Phase = PhaseFailed
		s.Err = err
		s.Lines = nil
		return true
	}
	s.Phase = PhaseReady
	s.Lines = lines
	return true
}

// LogBlock is one rendered log line.
type LogBlock struct {
	Text  string
	Class LogClass
}

// LogPanel is the render tree for the log content area.
type LogPanel struct {
	Placeholder *Placeholder
	Blocks      []LogBlock
}

// RenderLogs turns the log state into a render tree, one block per line in
// backend order.
func RenderLogs(s LogState) LogPanel {
	switch s.Phase {
	case PhaseIdle:
		return LogPanel{Placeholder: &Placeholder{Text: LogsIdleText, Tone: ToneMuted}}
	case PhaseLoading:
		return LogPanel{Placeholder: &Placeholder{Text: LogsLoadingText, Tone: ToneMuted}}
	case PhaseFailed:
		return LogPanel{Placeholder: &Placeholder{Text: "Error loading file: " + errString(s.Err), Tone: ToneDanger}}
	}
	if len(s.Lines) == 0 {
		return LogPanel{Placeholder: &Placeholder{Text: LogsEmptyText, Tone: ToneDefault}}
	}
	blocks := make([]LogBlock, 0, len(s.Lines))
	for _, line := range s.Lines {
		blocks = append(blocks, renderLogBlock(line))
	}
	return LogPanel{Blocks: blocks}
}

func renderLogBlock(line ingest.LogLine) LogBlock {
	text := FormatLogLine(line)
	return LogBlock{Text: text, Class: Classify(text)}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
