package ui

import (
	"fmt"
	"strings"
	"time"
)

func (m *Model) jobsColumns() []column {
	return []column{
		{title: "Job ID", width: 12},
		{title: "Name", width: m.cfg.Display.JobNameMaxLength},
		{title: "User", width: 10},
		{title: "Account", width: 10},
		{title: "Partition", width: 10},
		{title: "State", width: 11},
		{title: "Time", width: 11},
		{title: "Nodes", width: 0},
		{title: "CPU", width: 5},
		{title: "GPU", width: 8},
	}
}

func (m *Model) renderJobs(now time.Time) string {
	if m.groupByAccount {
		return m.renderJobsGrouped(now)
	}

	cols := m.jobsColumns()
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))
	b.WriteByte('\n')

	if len(m.visibleJobs) == 0 {
		if m.activeFilter != "" {
			b.WriteString(m.styles.MutedText.Render("no jobs match the filter"))
		} else {
			b.WriteString(m.styles.MutedText.Render("no jobs"))
		}
		return b.String()
	}

	start, end := visibleWindow(len(m.visibleJobs), m.jobsList.ScrollOffset, m.jobsList.VisibleCount)
	for row := start; row < end; row++ {
		job := &m.jobs[m.visibleJobs[row]]
		state := job.PrimaryState()
		cells := []string{
			job.DisplayID(),
			job.Name,
			job.UserName,
			job.Account,
			job.Partition,
			state,
			FormatDuration(job.Elapsed(now)),
			job.Nodes,
			fmt.Sprintf("%d", job.CPUs()),
			job.GPUs().Display(),
		}
		selected := row == m.jobsList.Selected
		line := renderRow(m.styles, cells, widths, selected)
		if !selected {
			// Recolor only the state cell; rebuild the row with the
			// state styled in place.
			line = m.renderRowColored(cells, widths, 5, state)
		}
		b.WriteString(line)
		if row < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) groupedJobsColumns() []column {
	return []column{
		{title: "ID / Account", width: 16},
		{title: "Name", width: 0},
		{title: "Partition", width: 10},
		{title: "State", width: 11},
		{title: "Time", width: 11},
		{title: "GPU", width: 8},
	}
}

// renderJobsGrouped renders the jobs list with one underlined summary
// line per account and the account's jobs indented beneath it. The
// visible slice is already ordered account-contiguously, so the window
// walks job rows and emits a header whenever the account changes.
func (m *Model) renderJobsGrouped(now time.Time) string {
	cols := m.groupedJobsColumns()
	widths := resolveWidths(cols, m.width)

	var b strings.Builder
	b.WriteString(renderHeaderRow(m.styles, cols, widths))

	if len(m.visibleJobs) == 0 {
		b.WriteByte('\n')
		if m.activeFilter != "" {
			b.WriteString(m.styles.MutedText.Render("no jobs match the filter"))
		} else {
			b.WriteString(m.styles.MutedText.Render("no jobs"))
		}
		return b.String()
	}

	headerStyle := m.styles.AccentText.Bold(true).Underline(true)
	lines := m.jobsList.VisibleCount
	account := ""
	for row := m.jobsList.ScrollOffset; row < len(m.visibleJobs) && lines > 0; row++ {
		job := &m.jobs[m.visibleJobs[row]]
		if job.Account != account {
			// A header with no job beneath it orients nobody.
			if lines < 2 {
				break
			}
			account = job.Account
			b.WriteByte('\n')
			b.WriteString(headerStyle.Render(m.accountSummary(account)))
			lines--
		}

		state := job.PrimaryState()
		gpus := "-"
		if g := job.GPUs(); g.Count > 0 {
			gpus = g.Display()
		}
		cells := []string{
			"  " + job.DisplayID(),
			job.Name,
			job.Partition,
			state,
			FormatDuration(job.Elapsed(now)),
			gpus,
		}
		b.WriteByte('\n')
		if row == m.jobsList.Selected {
			b.WriteString(renderRow(m.styles, cells, widths, true))
		} else {
			b.WriteString(m.renderRowColored(cells, widths, 3, state))
		}
		lines--
	}
	return b.String()
}

// accountSummary totals one account's visible jobs for its group header.
func (m *Model) accountSummary(account string) string {
	var total, running, pending int
	var gpus int64
	for _, i := range m.visibleJobs {
		job := &m.jobs[i]
		if job.Account != account {
			continue
		}
		total++
		switch {
		case job.IsRunning():
			running++
		case job.IsPending():
			pending++
		}
		gpus += job.GPUs().Count
	}
	return fmt.Sprintf("%s (%d jobs: %d R, %d P, %d GPUs)", account, total, running, pending, gpus)
}

// renderRowColored renders a non-selected row with the state column in
// its state color and the rest in default text.
func (m *Model) renderRowColored(cells []string, widths []int, stateCol int, state string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		padded := padTo(cell, widths[i])
		if i == stateCol {
			parts[i] = m.styles.StateStyle(state).Render(padded)
		} else {
			parts[i] = padded
		}
	}
	return strings.Join(parts, " ")
}
