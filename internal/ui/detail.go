package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/hochej/cmon/internal/model"
)

// renderJobDetail builds the full-record text shown in the detail
// overlay viewport.
func renderJobDetail(styles Styles, job *model.Job, now time.Time) string {
	label := func(s string) string { return styles.MutedText.Render(padTo(s, 16)) }

	var b strings.Builder
	line := func(name, value string) {
		b.WriteString(label(name))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	b.WriteString(styles.Title.Render(fmt.Sprintf("Job %s — %s", job.DisplayID(), job.Name)))
	b.WriteString("\n\n")

	state := job.PrimaryState()
	line("State", styles.StateStyle(state).Render(state)+"  ("+strings.Join(job.State, ",")+")")
	line("User", job.UserName)
	line("Group", job.GroupName)
	line("Account", job.Account)
	line("Partition", job.Partition)
	line("QOS", job.QOS)
	if p, ok := job.Priority.Value(); ok {
		line("Priority", fmt.Sprintf("%d", p))
	}
	if job.Reason != "" && job.Reason != "None" {
		line("Reason", job.Reason)
	}
	b.WriteByte('\n')

	line("Nodes", job.Nodes)
	line("CPUs", fmt.Sprintf("%d", job.CPUs()))
	if gpus := job.GPUs(); gpus.Count > 0 {
		line("GPUs", gpus.Display())
	}
	if mem := job.Memory(); mem != "" {
		line("Memory", mem)
	}
	b.WriteByte('\n')

	line("Submitted", formatTimestamp(job.SubmitTime))
	line("Started", formatTimestamp(job.StartTime))
	line("Elapsed", FormatDuration(job.Elapsed(now)))
	switch {
	case job.TimeLimit.IsInfinite():
		line("Time limit", "unlimited")
	default:
		if limit, ok := job.TimeLimit.Value(); ok {
			line("Time limit", FormatDuration(time.Duration(limit)*time.Minute))
		}
	}
	if left, ok := job.Remaining(now); ok {
		line("Remaining", FormatDuration(left))
	}
	b.WriteByte('\n')

	if job.WorkDir != "" {
		line("Workdir", job.WorkDir)
	}
	if job.TresAlloc != "" {
		line("TRES", job.TresAlloc)
	}

	b.WriteByte('\n')
	b.WriteString(styles.FaintText.Render("esc: close  c: cancel  y: copy id"))
	return b.String()
}

func formatTimestamp(tv model.TimeValue) string {
	if t, ok := tv.Time(); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return "—"
}
