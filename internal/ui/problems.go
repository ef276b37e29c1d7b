package ui

import (
	"strings"
)

// renderProblems draws the nodes needing attention: down/failed nodes
// in one panel, drained/draining in the other. Tab switches focus.
func (m *Model) renderProblems() string {
	var b strings.Builder

	b.WriteString(m.panelTitle("Down / Failed", m.problems == panelDown, len(m.downNodes)))
	b.WriteByte('\n')
	b.WriteString(m.renderProblemNodes(m.downNodes, &m.downList, m.problems == panelDown))
	b.WriteString("\n\n")

	b.WriteString(m.panelTitle("Draining / Drained", m.problems == panelDraining, len(m.drainNodes)))
	b.WriteByte('\n')
	b.WriteString(m.renderProblemNodes(m.drainNodes, &m.drainingList, m.problems == panelDraining))

	return b.String()
}

func (m *Model) renderProblemNodes(indices []int, list *ListState, focused bool) string {
	if len(indices) == 0 {
		return m.styles.SuccessText.Render("  none")
	}
	cols := []column{
		{title: "Node", width: 14},
		{title: "Partition", width: 10},
		{title: "State", width: 12},
		{title: "Reason", width: 0},
	}
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')
	prefix := m.cfg.Display.NodePrefixStrip
	start, end := visibleWindow(len(indices), list.ScrollOffset, list.VisibleCount)
	for row := start; row < end; row++ {
		node := &m.nodes[indices[row]]
		state := node.PrimaryState()
		cells := []string{
			node.DisplayName(prefix),
			node.PartitionName(),
			state,
			node.Reason.Description,
		}
		if focused && row == list.Selected {
			b.WriteString(renderRow(m.styles, cells, widths, true))
		} else {
			parts := make([]string, len(cells))
			for i, cell := range cells {
				padded := padTo(cell, widths[i])
				if i == 2 {
					parts[i] = m.styles.StateStyle(state).Render(padded)
				} else {
					parts[i] = padded
				}
			}
			b.WriteString(strings.Join(parts, " "))
		}
		if row < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
