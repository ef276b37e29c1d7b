package ui

import (
	"strings"
)

var helpSections = []struct {
	title string
	rows  [][2]string
}{
	{"Views", [][2]string{
		{"1-5", "Jobs / Nodes / Partitions / Me / Problems"},
		{"tab", "Next view, or next panel in Me and Problems"},
	}},
	{"Navigation", [][2]string{
		{"j/k, ↑/↓", "Move selection"},
		{"g / G", "Top / bottom"},
		{"ctrl+u / ctrl+d", "Half page up / down"},
	}},
	{"Jobs", [][2]string{
		{"enter", "Job details"},
		{"c", "Cancel job (with confirmation)"},
		{"y", "Copy job ID to clipboard"},
		{"a", "Toggle all jobs / my jobs"},
		{"A", "Cycle account focus"},
		{"ctrl+g", "Group by account"},
		{"s", "Sort menu"},
	}},
	{"Filtering", [][2]string{
		{"/", "Quick search"},
		{"f", "Filter (user:x account:y state:running gpu:yes, ! negates)"},
		{"esc", "Clear active filter"},
	}},
	{"Data", [][2]string{
		{"r", "Refresh jobs now"},
		{"e / E", "Export view as JSON / CSV"},
		{"v", "Nodes: list / grid"},
	}},
	{"General", [][2]string{
		{"?", "This help"},
		{"q", "Quit"},
	}},
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("cmon — keys"))
	b.WriteString("\n\n")
	for _, section := range helpSections {
		b.WriteString(m.styles.AccentText.Render(section.title))
		b.WriteByte('\n')
		for _, row := range section.rows {
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(padTo(row[0], 16)))
			b.WriteString(m.styles.MutedText.Render(row[1]))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.FaintText.Render("esc or ? to close"))
	return m.styles.Modal.Render(b.String())
}
