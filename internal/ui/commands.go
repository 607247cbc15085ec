package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logdeck/internal/export"
	"github.com/five82/logdeck/internal/ingest"
	"github.com/five82/logdeck/internal/logtail"
	"github.com/five82/logdeck/internal/state"
	"github.com/five82/logdeck/internal/views"
)

// Messages

type probeMsg state.ProbeResult

// ingestsMsg answers a ListIngests call issued by one tab.
type ingestsMsg struct {
	tab     Tab
	gen     uint64
	records []ingest.IngestRecord
	err     error
}

type logsMsg struct {
	gen   uint64
	lines []ingest.LogLine
	err   error
}

type uploadMsg struct {
	result ingest.UploadResult
	err    error
}

// previewDueMsg fires after the path input has been idle for previewDelay.
type previewDueMsg struct {
	path string
}

type previewMsg struct {
	path    string
	preview logtail.Preview
	err     error
}

type exportMsg struct {
	path string
	err  error
}

// Commands

func probeCmd(ctx context.Context, monitor *state.Monitor) tea.Cmd {
	return func() tea.Msg {
		return probeMsg(monitor.Probe(ctx))
	}
}

func listIngestsCmd(ctx context.Context, gw ingest.Gateway, tab Tab, gen uint64) tea.Cmd {
	return func() tea.Msg {
		records, err := gw.ListIngests(ctx)
		return ingestsMsg{tab: tab, gen: gen, records: records, err: err}
	}
}

func fetchLogsCmd(ctx context.Context, gw ingest.Gateway, id ingest.ID, limit int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		lines, err := gw.FetchLogs(ctx, id, limit)
		return logsMsg{gen: gen, lines: lines, err: err}
	}
}

func uploadCmd(ctx context.Context, gw ingest.Gateway, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadMsg{err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()
		res, err := gw.Upload(ctx, path, f)
		return uploadMsg{result: res, err: err}
	}
}

func previewDueCmd(path string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return previewDueMsg{path: path} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return previewDueMsg{path: path}
	})
}

func previewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := logtail.Load(path, logtail.PreviewLines)
		return previewMsg{path: path, preview: p, err: err}
	}
}

func exportCmd(path string, panel views.TablePanel) tea.Cmd {
	return func() tea.Msg {
		written, err := export.Save(path, panel)
		return exportMsg{path: written, err: err}
	}
}
