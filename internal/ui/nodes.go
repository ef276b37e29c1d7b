package ui

import (
	"fmt"
	"strings"
)

func (m *Model) nodesColumns() []column {
	return []column{
		{title: "Node", width: 14},
		{title: "Partition", width: 10},
		{title: "State", width: 10},
		{title: "CPUs", width: 9},
		{title: "Memory", width: 13},
		{title: "GPUs", width: 14},
		{title: "Reason", width: 0},
	}
}

func (m *Model) renderNodes() string {
	if m.gridMode {
		return m.renderNodeGrid()
	}

	cols := m.nodesColumns()
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')

	if len(m.nodes) == 0 {
		b.WriteString(m.styles.MutedText.Render("no nodes"))
		return b.String()
	}

	prefix := m.cfg.Display.NodePrefixStrip
	start, end := visibleWindow(len(m.nodes), m.nodesList.ScrollOffset, m.nodesList.VisibleCount)
	for row := start; row < end; row++ {
		node := &m.nodes[row]
		state := node.PrimaryState()
		usedMB := node.MemoryTotalMB() - node.MemoryFreeMB()
		cells := []string{
			node.DisplayName(prefix),
			node.PartitionName(),
			state,
			fmt.Sprintf("%d/%d", node.CPUs.Allocated, node.CPUs.Total),
			fmt.Sprintf("%s/%s", FormatMemoryMB(usedMB), FormatMemoryMB(node.MemoryTotalMB())),
			node.GPUs().Display(),
			node.Reason.Description,
		}
		if row == m.nodesList.Selected {
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

// renderNodeGrid draws one glyph per node, colored by state, wrapped
// to the terminal width. Dense clusters read at a glance this way.
func (m *Model) renderNodeGrid() string {
	if len(m.nodes) == 0 {
		return m.styles.MutedText.Render("no nodes")
	}

	perRow := m.width / 2
	if perRow < 1 {
		perRow = 1
	}

	var b strings.Builder
	for i := range m.nodes {
		node := &m.nodes[i]
		glyph := "■"
		switch {
		case node.IsDown() || node.IsFail():
			glyph = "✗"
		case node.IsDrained() || node.IsDraining():
			glyph = "▼"
		case node.IsIdle():
			glyph = "□"
		}
		b.WriteString(m.styles.StateStyle(node.PrimaryState()).Render(glyph))
		if (i+1)%perRow == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("■ busy  □ idle  ▼ draining  ✗ down    v: list view"))
	return b.String()
}
