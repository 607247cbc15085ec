package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// disabledTabHint labels tabs switched off by degraded mode.
const disabledTabHint = "Database unavailable"

// renderHeader renders the logo, the tab bar and the backend indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("logdeck", styles.Logo)}
	for i, t := range tabOrder {
		parts = append(parts, m.renderTab(i+1, t, styles, bg))
	}

	right := bg.Render("● DB OK", styles.SuccessText)
	if m.session.Degraded() {
		right = bg.Render("● DB DOWN", styles.DangerText)
	}
	if m.apiURL != "" {
		right = bg.Render(truncateMiddle(m.apiURL, 40), styles.MutedText) + sep + right
	}

	left := strings.Join(parts, sep)
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	content := left
	if gap >= 2 {
		content = left + bg.Spaces(gap) + right
	}
	return styles.Header.Width(m.width).Render(content)
}

func (m Model) renderTab(n int, t Tab, styles Styles, bg BgStyle) string {
	label := string(rune('0'+n)) + " " + t.Label()
	switch {
	case !m.nav.Enabled(t):
		return bg.Render(label+" · "+disabledTabHint, styles.FaintText.Faint(true))
	case m.nav.Active() == t:
		return styles.Selected.Bold(true).Padding(0, 1).Render(label)
	default:
		return bg.Render(label, styles.MutedText)
	}
}

// renderCommandBar renders the key hints for the active tab.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.nav.Active() {
	case TabUploads:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open logs"},
			{"ctrl+d/u", "Scroll logs"},
			{"r", "Reload"},
		}
	case TabDB:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"x", "Export xlsx"},
			{"r", "Reload"},
		}
	default:
		if m.pathInput.Focused() {
			commands = []cmd{
				{"enter", "Upload"},
				{"esc", "Done editing"},
				{"tab", "Next tab"},
			}
		} else {
			commands = []cmd{
				{"i", "Edit path"},
				{"enter", "Upload"},
			}
		}
	}
	if !m.pathInput.Focused() || m.nav.Active() != TabUpload {
		commands = append(commands, cmd{"1-3", "Tabs"}, cmd{"?", "More"})
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}
