package ui

import (
	"fmt"
	"strings"
)

func (m *Model) partitionsColumns() []column {
	return []column{
		{title: "Partition", width: 14},
		{title: "Nodes", width: 6},
		{title: "CPUs", width: 13},
		{title: "CPU%", width: 6},
		{title: "GPUs", width: 11},
		{title: "GPU%", width: 6},
		{title: "Memory", width: 15},
		{title: "Down", width: 5},
		{title: "Drain", width: 0},
	}
}

func (m *Model) renderPartitions() string {
	cols := m.partitionsColumns()
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')

	if len(m.partitions) == 0 {
		b.WriteString(m.styles.MutedText.Render("no partitions"))
		return b.String()
	}

	start, end := visibleWindow(len(m.partitions), m.partitionsList.ScrollOffset, m.partitionsList.VisibleCount)
	for row := start; row < end; row++ {
		p := m.partitions[row]
		usedMB := p.MemTotalMB - p.MemFreeMB
		gpus := "—"
		gpuPct := ""
		if p.GPUsTotal > 0 {
			gpus = fmt.Sprintf("%d/%d", p.GPUsUsed, p.GPUsTotal)
			gpuPct = fmt.Sprintf("%.0f%%", p.GPUUtilization())
		}
		cells := []string{
			p.Name,
			fmt.Sprintf("%d", p.NodeCount),
			fmt.Sprintf("%d/%d", p.CPUsAlloc, p.CPUsTotal),
			fmt.Sprintf("%.0f%%", p.CPUUtilization()),
			gpus,
			gpuPct,
			fmt.Sprintf("%s/%s", FormatMemoryMB(usedMB), FormatMemoryMB(p.MemTotalMB)),
			fmt.Sprintf("%d", p.Down),
			fmt.Sprintf("%d", p.Draining),
		}
		b.WriteString(renderRow(m.styles, cells, widths, row == m.partitionsList.Selected))
		if row < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
