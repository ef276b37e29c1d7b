package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the dashboard.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Per-state colors keyed by canonical state token.
	StateColors map[string]string
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)).
			Padding(0, 1).
			Bold(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		stateColors: t.StateColors,
		muted:       t.Muted,
	}
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TableHeader lipgloss.Style
	Selected    lipgloss.Style
	Modal       lipgloss.Style
	Footer      lipgloss.Style

	stateColors map[string]string
	muted       string
}

// StateStyle returns a foreground style for a canonical state token.
func (s Styles) StateStyle(state string) lipgloss.Style {
	color := s.stateColors[state]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// GetTheme returns the named theme, falling back to dark.
func GetTheme(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

func darkTheme() Theme {
	return Theme{
		Name: "dark",

		Background: "#1a1b26",
		Surface:    "#24283b",

		SelectionBg:   "#364a82",
		SelectionText: "#c0caf5",

		Border:      "#3b4261",
		BorderFocus: "#7aa2f7",

		Text:    "#c0caf5",
		Muted:   "#565f89",
		Faint:   "#414868",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Warning: "#e0af68",
		Danger:  "#f7768e",
		Info:    "#7dcfff",

		StateColors: map[string]string{
			"RUNNING":       "#9ece6a",
			"PENDING":       "#e0af68",
			"COMPLETING":    "#7dcfff",
			"COMPLETED":     "#565f89",
			"CANCELLED":     "#565f89",
			"FAILED":        "#f7768e",
			"TIMEOUT":       "#f7768e",
			"OUT_OF_MEMORY": "#f7768e",
			"NODE_FAIL":     "#f7768e",
			"SUSPENDED":     "#bb9af7",
			"IDLE":          "#9ece6a",
			"MIXED":         "#e0af68",
			"ALLOCATED":     "#7aa2f7",
			"DOWN":          "#f7768e",
			"DRAINED":       "#f7768e",
			"DRAINING":      "#e0af68",
			"FAIL":          "#f7768e",
			"MAINT":         "#bb9af7",
		},
	}
}

func lightTheme() Theme {
	return Theme{
		Name: "light",

		Background: "#fafafa",
		Surface:    "#eaeaea",

		SelectionBg:   "#bcd9f5",
		SelectionText: "#1f2328",

		Border:      "#d0d7de",
		BorderFocus: "#0969da",

		Text:    "#1f2328",
		Muted:   "#656d76",
		Faint:   "#8c959f",
		Accent:  "#0969da",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#cf222e",
		Info:    "#0598bc",

		StateColors: map[string]string{
			"RUNNING":       "#1a7f37",
			"PENDING":       "#9a6700",
			"COMPLETING":    "#0598bc",
			"COMPLETED":     "#656d76",
			"CANCELLED":     "#656d76",
			"FAILED":        "#cf222e",
			"TIMEOUT":       "#cf222e",
			"OUT_OF_MEMORY": "#cf222e",
			"NODE_FAIL":     "#cf222e",
			"SUSPENDED":     "#8250df",
			"IDLE":          "#1a7f37",
			"MIXED":         "#9a6700",
			"ALLOCATED":     "#0969da",
			"DOWN":          "#cf222e",
			"DRAINED":       "#cf222e",
			"DRAINING":      "#9a6700",
			"FAIL":          "#cf222e",
			"MAINT":         "#8250df",
		},
	}
}
