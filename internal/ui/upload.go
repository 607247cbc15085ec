package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdeck/internal/prefs"
	"github.com/five82/logdeck/internal/views"
)

// handleInputKey routes keys while the path input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitUpload()
	case key.Matches(msg, m.keys.Blur):
		m.pathInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.pathInput.Blur()
		return m, m.selectTab(m.nav.Next())
	case key.Matches(msg, m.keys.ShiftTab):
		m.pathInput.Blur()
		return m, m.selectTab(m.nav.Prev())
	}

	before := m.pathInput.Value()
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	after := strings.TrimSpace(m.pathInput.Value())
	if after == strings.TrimSpace(before) {
		return m, cmd
	}
	m.preview, m.previewErr = nil, nil
	if after == "" {
		return m, cmd
	}
	return m, tea.Batch(cmd, previewDueCmd(after, m.previewDelay))
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusInput):
		return m, m.pathInput.Focus()
	case key.Matches(msg, m.keys.Submit):
		return m.submitUpload()
	}
	return m, nil
}

// submitUpload starts an upload of the chosen path. An empty path raises the
// alert instead, and a running upload ignores further submits.
func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	if m.upload.Busy {
		return m, nil
	}
	path := strings.TrimSpace(m.pathInput.Value())
	if strings.HasSuffix(path, string(filepath.Separator)) {
		path = ""
	}
	if !m.upload.Begin(path) {
		m.modal = newAlert(views.UploadAlertText)
		return m, nil
	}
	m.pathInput.Blur()
	m.logger.Info("upload started", "path", path)
	m.rememberUploadDir(path)
	return m, tea.Batch(uploadCmd(m.ctx, m.gateway, path), m.spinner.Tick)
}

func (m Model) rememberUploadDir(path string) {
	if m.prefsPath == "" {
		return
	}
	dir := filepath.Dir(path)
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.LastUploadDir = dir }); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// renderUploadPanel renders the path form, the local preview and the result.
func (m Model) renderUploadPanel() string {
	styles := m.theme.Styles()
	panel := views.RenderUpload(m.upload)
	inner := max(m.width-4, 10)

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("File  "))
	m.pathInput.Width = max(inner-8, 10)
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderUploadButton(panel))
	if !m.pathInput.Focused() {
		b.WriteString("  " + styles.FaintText.Render("i to edit path"))
	}
	b.WriteString("\n\n")

	if panel.Result != nil {
		b.WriteString(styles.AccentText.Bold(true).Render("Result"))
		b.WriteString("\n")
		text := panel.Result.Text
		if m.upload.Busy {
			text = m.spinner.View() + " " + text
		}
		for _, line := range clipLines(text, inner, 12) {
			b.WriteString(styles.Tone(panel.Result.Tone).Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderPreview(inner))

	return m.renderTitledBox("Upload", b.String(), m.width, m.contentHeight(), true)
}

func (m Model) renderUploadButton(panel views.UploadPanel) string {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.theme.Accent))
	if panel.ButtonDisabled {
		style = style.
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(m.theme.BorderMuted))
	}
	return style.Render(panel.ButtonLabel)
}

func (m Model) renderPreview(width int) string {
	styles := m.theme.Styles()
	switch {
	case m.previewErr != nil:
		return styles.WarningText.Render(truncate("Preview unavailable: "+m.previewErr.Error(), width))
	case m.preview == nil:
		return styles.FaintText.Render("Choose a file to preview its last lines.")
	}

	var b strings.Builder
	title := fmt.Sprintf("Preview · %s · %s", filepath.Base(m.preview.Path), m.preview.HumanSize())
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(title, width)))
	b.WriteString("\n")
	if len(m.preview.Lines) == 0 {
		b.WriteString(styles.FaintText.Render("(empty file)"))
		return b.String()
	}
	for _, line := range m.preview.Lines {
		text := truncate(strings.ReplaceAll(line, "\t", "    "), width)
		b.WriteString(styles.LogClass(views.Classify(line)).Faint(true).Render(text))
		b.WriteString("\n")
	}
	return b.String()
}
