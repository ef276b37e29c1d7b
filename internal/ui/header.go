package ui

import (
	"fmt"
	"strings"
	"time"
)

// staleFactor: data older than 3x its refresh interval is flagged.
const staleFactor = 3

func (m *Model) renderHeader(now time.Time) string {
	var tabs []string
	for i, v := range allViews {
		label := fmt.Sprintf("%d %s", i+1, v.Label())
		if v == m.view {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}

	left := m.styles.Title.Render("cmon") + " " + strings.Join(tabs, "")

	var status []string
	if m.activeFilter != "" {
		status = append(status, m.styles.AccentText.Render("filter: "+m.activeFilter))
	}
	if m.focusedAccount != "" {
		status = append(status, m.styles.AccentText.Render("account: "+m.focusedAccount))
	}
	if m.groupByAccount && m.view == ViewJobs {
		status = append(status, m.styles.AccentText.Render("grouped by account"))
	}
	if m.showAllJobs {
		status = append(status, m.styles.MutedText.Render("all jobs"))
	} else {
		status = append(status, m.styles.MutedText.Render("my jobs"))
	}
	status = append(status, m.schedulerBadge())
	if badge := m.stalenessBadge(now); badge != "" {
		status = append(status, badge)
	}

	right := strings.Join(status, "  ")
	gap := m.width - visibleWidth(left) - visibleWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// schedulerBadge summarizes sdiag health: green when the mean cycle is
// under the threshold, yellow when slow, muted when unknown.
func (m *Model) schedulerBadge() string {
	if m.schedStats == nil {
		return m.styles.MutedText.Render("sched: —")
	}
	stats := m.schedStats
	if !stats.Available {
		return m.styles.MutedText.Render("sched: n/a")
	}
	healthy, known := stats.Healthy()
	text := fmt.Sprintf("sched: %s", stats.MeanCycleDisplay())
	switch {
	case !known:
		return m.styles.MutedText.Render(text)
	case healthy:
		return m.styles.SuccessText.Render(text)
	default:
		return m.styles.WarningText.Render(text + " slow")
	}
}

// stalenessBadge flags the current view's data when its last fetch is
// older than 3x the configured interval. Stale data stays on screen;
// the badge is the only change.
func (m *Model) stalenessBadge(now time.Time) string {
	var (
		at       time.Time
		interval int
	)
	switch m.view {
	case ViewJobs, ViewPersonal:
		at, interval = m.jobsAt, m.cfg.Refresh.JobsInterval
	case ViewNodes, ViewPartitions, ViewProblems:
		at, interval = m.nodesAt, m.cfg.Refresh.NodesInterval
	}
	if at.IsZero() {
		return m.styles.MutedText.Render("waiting for data…")
	}
	threshold := time.Duration(interval*staleFactor) * time.Second
	if now.Sub(at) > threshold {
		return m.styles.WarningText.Render("stale " + FormatAge(at, now))
	}
	return ""
}

func (m *Model) renderFooter(now time.Time) string {
	if msg, success, ok := m.feedback.currentAction(now); ok {
		if success {
			return m.styles.SuccessText.Render(msg)
		}
		return m.styles.DangerText.Render(msg)
	}
	if msg, ok := m.feedback.currentError(now); ok {
		return m.styles.DangerText.Render(msg)
	}
	if kind, ok := m.feedback.anyPersistent(); ok {
		return m.styles.DangerText.Render(fmt.Sprintf("%s: repeated fetch failures, showing last good data", kind))
	}
	if len(m.feedback.warnings) > 0 {
		return m.styles.WarningText.Render("config: " + m.feedback.warnings[0])
	}
	return m.styles.Footer.Render("?: help  /: search  f: filter  tab: next view  q: quit")
}
