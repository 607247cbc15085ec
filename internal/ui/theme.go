package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdeck/internal/views"
)

// Theme is a resolved color scheme. Every field is a hex color except Name.
type Theme struct {
	Name string

	Background string
	Surface    string // header, command bar
	SurfaceAlt string // unfocused boxes
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors keys are lowercased ingest statuses.
	StatusColors map[string]string
}

// palette is the minimal set of colors a theme is derived from.
type palette struct {
	bg0, bg1, bg2, bg3, sel string
	fg, comment, dim        string
	blue, green, yellow     string
	red, cyan               string
}

func newTheme(name string, p palette) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg0,
		Surface:       p.bg1,
		SurfaceAlt:    p.bg2,
		FocusBg:       p.bg3,
		SelectionBg:   p.sel,
		SelectionText: p.fg,
		Border:        p.comment,
		BorderMuted:   p.bg2,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.comment,
		Faint:         p.dim,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		StatusColors: map[string]string{
			"success":    p.green,
			"pending":    p.dim,
			"processing": p.cyan,
			"partial":    p.yellow,
			"error":      p.red,
			"failed":     p.red,
		},
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// Styles builds the text styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),
		Header:      fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:        fg(t.Warning).Bold(true),
		Selected:    fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Tone maps a render-tree tone to a text style.
func (s Styles) Tone(t views.Tone) lipgloss.Style {
	switch t {
	case views.ToneMuted:
		return s.MutedText
	case views.ToneSuccess:
		return s.SuccessText
	case views.ToneWarning:
		return s.WarningText
	case views.ToneDanger:
		return s.DangerText
	case views.ToneInfo:
		return s.InfoText
	default:
		return s.Text
	}
}

// LogClass maps a log line class to a text style.
func (s Styles) LogClass(c views.LogClass) lipgloss.Style {
	switch c {
	case views.LogError:
		return s.DangerText
	case views.LogWarning:
		return s.WarningText
	case views.LogInfo:
		return s.InfoText
	default:
		return s.Text
	}
}

// StatusBadge returns a badge style for an ingest status. Unknown statuses
// fall back to the success or error color according to tone.
func (s Styles) StatusBadge(status string, tone views.Tone) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		if tone == views.ToneSuccess {
			color = s.statusColors["success"]
		} else {
			color = s.statusColors["error"]
		}
	}
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every style onto bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Gruvbox"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": newTheme("Nightfox", palette{
		bg0: "#131a24", bg1: "#192330", bg2: "#212e3f", bg3: "#29394f", sel: "#2b3b51",
		fg: "#cdcecf", comment: "#738091", dim: "#71839b",
		blue: "#719cd6", green: "#81b29a", yellow: "#dbc074", red: "#c94f6d", cyan: "#63cdcf",
	}),
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": newTheme("Kanagawa", palette{
		bg0: "#16161D", bg1: "#1F1F28", bg2: "#2A2A37", bg3: "#363646", sel: "#2D4F67",
		fg: "#DCD7BA", comment: "#727169", dim: "#54546D",
		blue: "#7E9CD8", green: "#98BB6C", yellow: "#E6C384", red: "#E46876", cyan: "#7FB4CA",
	}),
	// https://github.com/morhetz/gruvbox
	"Gruvbox": newTheme("Gruvbox", palette{
		bg0: "#1d2021", bg1: "#282828", bg2: "#3c3836", bg3: "#504945", sel: "#665c54",
		fg: "#ebdbb2", comment: "#a89984", dim: "#928374",
		blue: "#83a598", green: "#b8bb26", yellow: "#fabd2f", red: "#fb4934", cyan: "#8ec07c",
	}),
}

// GetTheme returns a theme by name, the first theme when unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}
