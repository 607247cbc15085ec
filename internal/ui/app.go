package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdeck/internal/ingest"
	"github.com/five82/logdeck/internal/logtail"
	"github.com/five82/logdeck/internal/prefs"
	"github.com/five82/logdeck/internal/state"
	"github.com/five82/logdeck/internal/views"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Gateway   ingest.Gateway
	Monitor   *state.Monitor
	Session   *state.Session
	Logger    *slog.Logger
	APIURL    string
	LogLimit  int
	ThemeName string
	PrefsPath string
	// UploadDir seeds the path input.
	UploadDir string
	// ExportDir is where `x` writes workbooks; empty means the working directory.
	ExportDir string
	// PreviewDelay debounces the local file preview; zero uses 300ms.
	PreviewDelay time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	gateway      ingest.Gateway
	monitor      *state.Monitor
	session      *state.Session
	logger       *slog.Logger
	apiURL       string
	logLimit     int
	prefsPath    string
	exportDir    string
	previewDelay time.Duration

	theme   Theme
	keys    keyMap
	width   int
	height  int
	nav     Navigator
	spinner spinner.Model

	showHelp bool
	modal    Modal
	status   string

	// Upload tab
	upload     views.UploadState
	pathInput  textinput.Model
	preview    *logtail.Preview
	previewErr error

	// History tab
	history     views.HistoryState
	cursor      int
	logs        views.LogState
	logViewport viewport.Model

	// DB tab
	table       views.TableState
	tableOffset int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logLimit := opts.LogLimit
	if logLimit <= 0 {
		logLimit = ingest.DefaultLogLimit
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	delay := opts.PreviewDelay
	if delay == 0 {
		delay = PreviewDebounce
	}

	input := textinput.New()
	input.Placeholder = "/path/to/file.log"
	input.Prompt = ""
	input.CharLimit = 4096
	if dir := strings.TrimSpace(opts.UploadDir); dir != "" {
		input.SetValue(strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		gateway:      opts.Gateway,
		monitor:      opts.Monitor,
		session:      opts.Session,
		logger:       logger,
		apiURL:       opts.APIURL,
		logLimit:     logLimit,
		prefsPath:    prefsPath,
		exportDir:    opts.ExportDir,
		previewDelay: delay,
		theme:        GetTheme(opts.ThemeName),
		keys:         DefaultKeyMap(),
		nav:          NewNavigator(opts.Session),
		spinner:      sp,
		pathInput:    input,
		history:      views.NewHistoryState(),
		logViewport:  viewport.New(0, 0),
	}
}

// Init implements tea.Model. The probe runs before any tab is shown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(probeCmd(m.ctx, m.monitor), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncLogViewport()
		return m, nil

	case spinner.TickMsg:
		if m.nav.Started() && !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case probeMsg:
		return m.handleProbe(msg)

	case ingestsMsg:
		m.handleIngests(msg)
		return m, nil

	case logsMsg:
		if m.logs.Finish(msg.gen, msg.lines, msg.err) {
			if msg.err != nil {
				m.logger.Warn("fetch logs failed", "ingest_id", m.logs.IngestID, "error", msg.err)
			}
			m.syncLogViewport()
			m.logViewport.GotoTop()
		}
		return m, nil

	case uploadMsg:
		m.upload.Finish(msg.result, msg.err)
		if msg.err != nil {
			m.logger.Warn("upload failed", "error", msg.err)
		} else {
			m.logger.Info("upload finished", "path", m.pathInput.Value())
		}
		return m, nil

	case previewDueMsg:
		if msg.path != strings.TrimSpace(m.pathInput.Value()) {
			return m, nil
		}
		return m, previewCmd(msg.path)

	case previewMsg:
		if msg.path != strings.TrimSpace(m.pathInput.Value()) {
			return m, nil
		}
		if msg.err != nil {
			m.preview, m.previewErr = nil, msg.err
		} else {
			p := msg.preview
			m.preview, m.previewErr = &p, nil
		}
		return m, nil

	case exportMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
			m.logger.Warn("export failed", "error", msg.err)
		} else {
			m.status = "Exported to " + msg.path
			m.logger.Info("exported table", "path", msg.path)
		}
		return m, nil
	}

	if m.pathInput.Focused() {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.nav.Started() {
		return m.renderSplash()
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleProbe(msg probeMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil && !msg.Degraded {
		m.logger.Debug("probe settled with error", "error", msg.Err)
	}
	if m.session.Degraded() {
		m.history.Disconnected = true
	}
	m.nav.Start()
	return m, m.pathInput.Focus()
}

func (m *Model) handleIngests(msg ingestsMsg) {
	switch msg.tab {
	case TabUploads:
		if m.history.Finish(msg.gen, msg.records, msg.err) {
			m.cursor = 0
		}
	case TabDB:
		if m.table.Finish(msg.gen, msg.records, msg.err) {
			m.tableOffset = 0
		}
	}
	if msg.err != nil {
		m.logger.Warn("list ingests failed", "tab", msg.tab.String(), "error", msg.err)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}
	if !m.nav.Started() {
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Path input swallows printable keys while focused.
	if m.nav.Active() == TabUpload && m.pathInput.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m, m.selectTab(m.nav.Next())
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.selectTab(m.nav.Prev())
	case key.Matches(msg, m.keys.ViewUpload):
		return m, m.selectTab(TabUpload)
	case key.Matches(msg, m.keys.ViewHistory):
		return m, m.selectTab(TabUploads)
	case key.Matches(msg, m.keys.ViewDB):
		return m, m.selectTab(TabDB)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.selectTab(m.nav.Active())
	}

	switch m.nav.Active() {
	case TabUpload:
		return m.handleUploadKey(msg)
	case TabUploads:
		return m.handleHistoryKey(msg)
	case TabDB:
		return m.handleTableKey(msg)
	}
	return m, nil
}

// selectTab runs the navigator transition and the tab's load side effect.
func (m *Model) selectTab(t Tab) tea.Cmd {
	if !m.nav.Select(t) {
		return nil
	}
	m.status = ""
	switch t {
	case TabUploads:
		return tea.Batch(m.refreshHistory(), m.spinner.Tick)
	case TabDB:
		return tea.Batch(m.refreshTable(), m.spinner.Tick)
	default:
		return m.pathInput.Focus()
	}
}

func (m *Model) refreshHistory() tea.Cmd {
	gen := m.history.Begin()
	return listIngestsCmd(m.ctx, m.gateway, TabUploads, gen)
}

func (m *Model) refreshTable() tea.Cmd {
	gen := m.table.Begin()
	return listIngestsCmd(m.ctx, m.gateway, TabDB, gen)
}

// loading reports whether a spinner-worthy request is outstanding.
func (m Model) loading() bool {
	return m.history.Phase == views.PhaseLoading ||
		m.logs.Phase == views.PhaseLoading ||
		m.table.Phase == views.PhaseLoading ||
		m.upload.Busy
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.syncLogViewport()
	if m.prefsPath == "" {
		return
	}
	name := m.theme.Name
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// renderMain renders header, command bar, the active panel and the status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// contentHeight is the panel height below header and command bar and above
// the status line.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

func (m Model) renderContent() string {
	switch m.nav.Active() {
	case TabUploads:
		return m.renderHistoryPanel()
	case TabDB:
		return m.renderTablePanel()
	default:
		return m.renderUploadPanel()
	}
}

func (m Model) renderSplash() string {
	styles := m.theme.Styles()
	msg := m.spinner.View() + " " + styles.WarningText.Bold(true).Render("Checking backend…")
	if m.apiURL != "" {
		msg += "\n" + styles.MutedText.Render(m.apiURL)
	}
	if m.width == 0 {
		return msg
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	if m.status == "" {
		return bg.FillLine("", m.width)
	}
	style := styles.MutedText
	if strings.HasPrefix(m.status, "Export failed") {
		style = styles.DangerText
	}
	return bg.FillLine(bg.Render(truncate(m.status, m.width), style), m.width)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
