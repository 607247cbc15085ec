package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdeck/internal/views"
)

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.history.Records)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(count-1, 0)
	case key.Matches(msg, m.keys.Select):
		return m, m.openLogs(m.cursor)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
	}
	return m, nil
}

// openLogs selects history entry i and loads its logs.
func (m *Model) openLogs(i int) tea.Cmd {
	id, ok := m.history.Select(i)
	if !ok {
		return nil
	}
	gen := m.logs.Begin(id)
	m.syncLogViewport()
	return tea.Batch(fetchLogsCmd(m.ctx, m.gateway, id, m.logLimit, gen), m.spinner.Tick)
}

// historyWidths splits the screen between the entry list and the log viewer.
func (m Model) historyWidths() (list, logs int) {
	if m.width >= LayoutExtraWideWidth {
		list = m.width * 30 / 100
	} else {
		list = m.width * 40 / 100
	}
	list = max(list, LayoutMinListWidth)
	return list, max(m.width-list, 10)
}

func (m Model) renderHistoryPanel() string {
	listWidth, logWidth := m.historyWidths()
	height := m.contentHeight()

	list := m.renderTitledBox(m.historyTitle(), m.renderHistoryList(listWidth-2, height-2), listWidth, height, true)
	logs := m.renderTitledBox(m.logsTitle(), m.logViewport.View(), logWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, logs)
}

func (m Model) historyTitle() string {
	if m.history.Phase == views.PhaseReady && !m.history.Disconnected {
		return "History (" + strconv.Itoa(len(m.history.Records)) + ")"
	}
	return "History"
}

func (m Model) logsTitle() string {
	if m.logs.IngestID == "" {
		return "Logs"
	}
	return "Logs · ingest " + string(m.logs.IngestID)
}

// renderHistoryList draws two lines per entry and keeps the cursor in view.
func (m Model) renderHistoryList(width, height int) string {
	styles := m.theme.Styles()
	panel := views.RenderHistory(m.history)
	if panel.Placeholder != nil {
		text := panel.Placeholder.Text
		if m.history.Phase == views.PhaseLoading && !m.history.Disconnected {
			text = m.spinner.View() + " " + text
		}
		return styles.Tone(panel.Placeholder.Tone).Render(truncate(text, width))
	}

	perPage := max(height/2, 1)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(start+perPage, len(panel.Entries))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderHistoryEntry(panel.Entries[i], i == m.cursor, width)...)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHistoryEntry(e views.HistoryEntry, cursor bool, width int) []string {
	styles := m.theme.Styles()
	bgColor := m.theme.FocusBg
	if cursor {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	marker := "  "
	if e.Selected {
		marker = "● "
	}
	badge := e.Badge
	nameWidth := max(width-len(marker)-len(badge)-1, 4)
	name := truncate(e.FileName, nameWidth)
	gap := max(width-len(marker)-lipgloss.Width(name)-len(badge), 1)

	nameStyle, metaStyle, badgeStyle := styles.Text.Bold(true), styles.MutedText, styles.SuccessText
	if cursor {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, metaStyle, badgeStyle = sel.Bold(true), sel, sel
	}

	first := bg.Render(marker, styles.AccentText) + bg.Render(name, nameStyle) + bg.Spaces(gap) + bg.Render(badge, badgeStyle)
	second := bg.Spaces(len(marker)) + bg.Render(e.CreatedAt, metaStyle)
	return []string{bg.FillLine(first, width), bg.FillLine(second, width)}
}

// syncLogViewport re-renders the log panel into the viewport.
func (m *Model) syncLogViewport() {
	_, logWidth := m.historyWidths()
	m.logViewport.Width = max(logWidth-2, 1)
	m.logViewport.Height = max(m.contentHeight()-2, 1)
	m.logViewport.SetContent(m.renderLogContent(m.logViewport.Width))
}

func (m Model) renderLogContent(width int) string {
	styles := m.theme.Styles()
	panel := views.RenderLogs(m.logs)
	if panel.Placeholder != nil {
		return styles.Tone(panel.Placeholder.Tone).Render(truncate(panel.Placeholder.Text, width))
	}
	lines := make([]string, 0, len(panel.Blocks))
	for _, block := range panel.Blocks {
		text := truncate(strings.ReplaceAll(block.Text, "\n", " "), width)
		lines = append(lines, styles.LogClass(block.Class).Render(text))
	}
	return strings.Join(lines, "\n")
}
