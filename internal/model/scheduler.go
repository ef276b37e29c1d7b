package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SchedulerStats is the parsed subset of sdiag's text output. sdiag has
// no JSON mode on older releases and may be denied outright, so the
// unavailable case is first-class: Available false plus a reason, with
// every numeric field zeroed.
type SchedulerStats struct {
	Available bool
	Reason    string

	JobsPending int64
	JobsRunning int64

	LastCycleUs int64
	MeanCycleUs int64
	MaxCycleUs  int64

	BackfillLastCycleUs int64
	BackfillQueueLength int64
	BackfillLastDepth   int64
	BackfillTotalJobs   int64

	FetchedAt time.Time
}

// UnavailableStats records why sdiag produced nothing usable.
func UnavailableStats(reason string) SchedulerStats {
	return SchedulerStats{Reason: reason, FetchedAt: time.Now()}
}

// ParseSdiag scans sdiag's line-oriented output. Unknown lines are
// skipped; a field that never appears stays zero.
func ParseSdiag(output string) SchedulerStats {
	stats := SchedulerStats{Available: true, FetchedAt: time.Now()}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Last cycle:"):
			stats.LastCycleUs = parseMicroseconds(line)
		case strings.HasPrefix(line, "Mean cycle:"):
			stats.MeanCycleUs = parseMicroseconds(line)
		case strings.HasPrefix(line, "Max cycle:"):
			stats.MaxCycleUs = parseMicroseconds(line)
		case strings.HasPrefix(line, "Jobs pending:"):
			stats.JobsPending = parseLineNumber(line)
		case strings.HasPrefix(line, "Jobs running:"):
			stats.JobsRunning = parseLineNumber(line)
		case strings.Contains(line, "Backfill") && strings.Contains(line, "Last cycle"):
			stats.BackfillLastCycleUs = parseMicroseconds(line)
		case strings.Contains(line, "Backfill") && strings.Contains(line, "queue length"):
			stats.BackfillQueueLength = parseLineNumber(line)
		case strings.Contains(line, "Backfill") && strings.Contains(line, "depth"):
			stats.BackfillLastDepth = parseLineNumber(line)
		case strings.Contains(line, "Total backfilled jobs"):
			stats.BackfillTotalJobs = parseLineNumber(line)
		}
	}
	return stats
}

// sdiag reports cycle times as "Mean cycle:   1234 microseconds".
func parseMicroseconds(line string) int64 {
	fields := strings.Fields(line)
	for i, field := range fields {
		if strings.HasPrefix(field, "microsec") && i > 0 {
			if n, err := strconv.ParseInt(fields[i-1], 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func parseLineNumber(line string) int64 {
	_, suffix, ok := strings.Cut(line, ":")
	if !ok {
		return 0
	}
	fields := strings.Fields(suffix)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Healthy reports whether the mean scheduling cycle is under five
// seconds. The second result is false when stats are unavailable or
// the mean cycle was not reported.
func (s SchedulerStats) Healthy() (bool, bool) {
	if !s.Available || s.MeanCycleUs == 0 {
		return false, false
	}
	return s.MeanCycleUs < 5_000_000, true
}

// MeanCycleDisplay renders the mean cycle at a human scale, "N/A" when
// unknown.
func (s SchedulerStats) MeanCycleDisplay() string {
	if !s.Available || s.MeanCycleUs == 0 {
		return "N/A"
	}
	us := s.MeanCycleUs
	switch {
	case us < 1000:
		return fmt.Sprintf("%dus", us)
	case us < 1_000_000:
		return fmt.Sprintf("%.1fms", float64(us)/1000)
	default:
		return fmt.Sprintf("%.1fs", float64(us)/1_000_000)
	}
}
