package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderPersonal draws the Me view: the user's running and pending
// jobs plus their slice of the fairshare tree. Tab cycles the focused
// panel.
func (m *Model) renderPersonal(now time.Time) string {
	var b strings.Builder

	b.WriteString(m.renderPersonalSummary(now))
	b.WriteString("\n\n")

	b.WriteString(m.panelTitle("Running", m.personal == panelRunning, len(m.runningJobs)))
	b.WriteByte('\n')
	b.WriteString(m.renderPersonalJobs(m.runningJobs, &m.runningList, now, m.personal == panelRunning))
	b.WriteString("\n\n")

	b.WriteString(m.panelTitle("Pending", m.personal == panelPending, len(m.pendingJobs)))
	b.WriteByte('\n')
	b.WriteString(m.renderPendingJobs(m.pendingJobs, &m.pendingList, m.personal == panelPending))
	b.WriteString("\n\n")

	b.WriteString(m.panelTitle("Fairshare", m.personal == panelFairshare, len(m.fairshare)))
	b.WriteByte('\n')
	b.WriteString(m.renderFairshare())

	return b.String()
}

func (m *Model) panelTitle(name string, focused bool, count int) string {
	label := fmt.Sprintf("%s (%d)", name, count)
	if focused {
		return m.styles.TabActive.Render(label)
	}
	return m.styles.TabInactive.Render(label)
}

func (m *Model) renderPersonalSummary(now time.Time) string {
	var cpus, gpus int64
	for _, i := range m.runningJobs {
		job := &m.jobs[i]
		cpus += job.CPUs()
		gpus += job.GPUs().Count
	}
	summary := fmt.Sprintf("%s: %d running, %d pending, %d CPUs, %d GPUs in use",
		m.username, len(m.runningJobs), len(m.pendingJobs), cpus, gpus)
	return m.styles.AccentText.Render(summary)
}

func (m *Model) renderPersonalJobs(indices []int, list *ListState, now time.Time, focused bool) string {
	if len(indices) == 0 {
		return m.styles.MutedText.Render("  none")
	}
	cols := []column{
		{title: "Job ID", width: 12},
		{title: "Name", width: m.cfg.Display.JobNameMaxLength},
		{title: "Partition", width: 10},
		{title: "Time", width: 11},
		{title: "Remaining", width: 11},
		{title: "Nodes", width: 0},
	}
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')
	start, end := visibleWindow(len(indices), list.ScrollOffset, list.VisibleCount)
	for row := start; row < end; row++ {
		job := &m.jobs[indices[row]]
		remaining := "—"
		if left, ok := job.Remaining(now); ok {
			remaining = FormatDuration(left)
		} else if job.TimeLimit.IsInfinite() {
			remaining = "∞"
		}
		cells := []string{
			job.DisplayID(),
			job.Name,
			job.Partition,
			FormatDuration(job.Elapsed(now)),
			remaining,
			job.Nodes,
		}
		b.WriteString(renderRow(m.styles, cells, widths, focused && row == list.Selected))
		if row < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) renderPendingJobs(indices []int, list *ListState, focused bool) string {
	if len(indices) == 0 {
		return m.styles.MutedText.Render("  none")
	}
	cols := []column{
		{title: "Job ID", width: 12},
		{title: "Name", width: m.cfg.Display.JobNameMaxLength},
		{title: "Partition", width: 10},
		{title: "Priority", width: 9},
		{title: "Reason", width: 0},
	}
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')
	start, end := visibleWindow(len(indices), list.ScrollOffset, list.VisibleCount)
	for row := start; row < end; row++ {
		job := &m.jobs[indices[row]]
		priority := "—"
		if p, ok := job.Priority.Value(); ok {
			priority = fmt.Sprintf("%d", p)
		}
		cells := []string{
			job.DisplayID(),
			job.Name,
			job.Partition,
			priority,
			job.Reason,
		}
		b.WriteString(renderRow(m.styles, cells, widths, focused && row == list.Selected))
		if row < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderFairshare draws the flattened account tree with the current
// user's row highlighted.
func (m *Model) renderFairshare() string {
	if len(m.fairshare) == 0 {
		return m.styles.MutedText.Render("  no fairshare data")
	}
	cols := []column{
		{title: "Account / User", width: 28},
		{title: "Shares", width: 8},
		{title: "Factor", width: 9},
		{title: "CPU h", width: 10},
		{title: "GPU h", width: 0},
	}
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')
	focused := m.personal == panelFairshare
	start, end := visibleWindow(len(m.fairshare), m.fairshareList.ScrollOffset, m.fairshareList.VisibleCount)
	for i := start; i < end; i++ {
		row := m.fairshare[i]
		cells := []string{
			row.DisplayName(),
			fmt.Sprintf("%.1f%%", row.SharesPercent),
			fmt.Sprintf("%.4f", row.Factor),
			fmt.Sprintf("%.1f", row.CPUHours),
			fmt.Sprintf("%.1f", row.GPUHours),
		}
		selected := focused && i == m.fairshareList.Selected
		line := renderRow(m.styles, cells, widths, selected)
		if !selected && row.IsCurrentUser {
			line = m.styles.AccentText.Render(stripJoin(cells, widths))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func stripJoin(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = padTo(cell, widths[i])
	}
	return strings.Join(parts, " ")
}
