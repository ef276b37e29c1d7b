package ui

import (
	"time"

	"github.com/hochej/cmon/internal/model"
)

// DataKind identifies which fetcher produced a data event. Each kind
// has its own timer, throttle, and staleness tracking.
type DataKind int

const (
	KindJobs DataKind = iota
	KindNodes
	KindFairshare
	KindScheduler
)

func (k DataKind) String() string {
	switch k {
	case KindJobs:
		return "jobs"
	case KindNodes:
		return "nodes"
	case KindFairshare:
		return "fairshare"
	case KindScheduler:
		return "scheduler"
	default:
		return "unknown"
	}
}

// Data events delivered through the bounded channel. Each snapshot
// message replaces the previous snapshot of its kind wholesale.

type JobsMsg struct {
	Jobs      []model.Job
	FetchedAt time.Time
}

type NodesMsg struct {
	Nodes     []model.Node
	FetchedAt time.Time
}

type FairshareMsg struct {
	Entries   []model.FairshareEntry
	FetchedAt time.Time
}

type SchedStatsMsg struct {
	Stats model.SchedulerStats
}

// FetchErrMsg reports a failed fetch cycle. Persistent is set once the
// kind's consecutive-failure count passes the threshold; the UI shows
// a sticky indicator instead of a transient one. The last good
// snapshot of the kind stays on screen either way.
type FetchErrMsg struct {
	Kind       DataKind
	Err        error
	Persistent bool
}

// CancelResultMsg reports the outcome of an scancel request.
type CancelResultMsg struct {
	JobID int64
	Err   error
}
