package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/logdeck/internal/views"
)

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.table.Records)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.tableOffset < count-1 {
			m.tableOffset++
		}
	case key.Matches(msg, m.keys.Up):
		if m.tableOffset > 0 {
			m.tableOffset--
		}
	case key.Matches(msg, m.keys.Top):
		m.tableOffset = 0
	case key.Matches(msg, m.keys.Bottom):
		m.tableOffset = max(count-1, 0)
	case key.Matches(msg, m.keys.Export):
		return m, m.exportTable()
	}
	return m, nil
}

func (m *Model) exportTable() tea.Cmd {
	if m.table.Phase != views.PhaseReady {
		m.status = "Export failed: table has not loaded"
		return nil
	}
	name := "ingests-" + time.Now().Format("20060102-150405") + ".xlsx"
	m.status = "Exporting..."
	return exportCmd(filepath.Join(m.exportDir, name), views.RenderTable(m.table))
}

func (m Model) renderTablePanel() string {
	width, height := m.width, m.contentHeight()
	title := "DB Explorer"
	if m.table.Phase == views.PhaseReady {
		title += " (" + pluralRows(len(m.table.Records)) + ")"
	}
	return m.renderTitledBox(title, m.renderTable(width-2, height-2), width, height, true)
}

// renderTable draws the header and the visible rows. A loading or error
// message spans the full table width below the header.
func (m Model) renderTable(width, height int) string {
	styles := m.theme.Styles()
	panel := views.RenderTable(m.table)

	visible := max(height-4, 1)
	rows := panel.Rows
	offset := min(m.tableOffset, max(len(rows)-1, 0))
	rows = rows[offset:min(offset+visible, len(rows))]

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells)
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color(m.theme.Accent))
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(m.theme.Text))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))).
		BorderRow(false).
		Width(width).
		Headers(panel.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(rows) {
				return styles.StatusBadge(rows[row].Cells[2], rows[row].StatusTone).Margin(0, 1).Padding(0)
			}
			return cellStyle
		})

	out := t.Render()
	if panel.Span != nil {
		text := panel.Span.Text
		if m.table.Phase == views.PhaseLoading {
			text = m.spinner.View() + " " + text
		}
		span := lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Tone(panel.Span.Tone).Render(truncate(text, width)))
		out = strings.TrimRight(out, "\n") + "\n" + span
	}
	if len(panel.Rows) > visible {
		out += "\n" + styles.FaintText.Render("rows "+pluralRange(offset+1, offset+len(rows), len(panel.Rows)))
	}
	return out
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

func pluralRange(from, to, total int) string {
	return fmt.Sprintf("%d-%d of %d", from, to, total)
}
