package app

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/model"
	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

// dataChannelCapacity bounds the data channel. Fetch results beyond
// this are dropped, never queued: the consumer is clearly not keeping
// up and stale snapshots would only make that worse.
const dataChannelCapacity = 32

// Intervals carries the per-kind polling configuration as durations.
type Intervals struct {
	Jobs       time.Duration
	Nodes      time.Duration
	Fairshare  time.Duration
	Scheduler  time.Duration
	MaxBackoff time.Duration

	IdleSlowdown  bool
	IdleThreshold time.Duration
}

// IntervalsFromConfig converts the second-granularity config values.
func IntervalsFromConfig(rc config.RefreshConfig) Intervals {
	return Intervals{
		Jobs:          time.Duration(rc.JobsInterval) * time.Second,
		Nodes:         time.Duration(rc.NodesInterval) * time.Second,
		Fairshare:     time.Duration(rc.FairshareInterval) * time.Second,
		Scheduler:     time.Duration(rc.SchedulerInterval) * time.Second,
		MaxBackoff:    time.Duration(rc.MaxBackoff) * time.Second,
		IdleSlowdown:  rc.IdleSlowdown,
		IdleThreshold: time.Duration(rc.IdleThreshold) * time.Second,
	}
}

// fetchFunc performs one fetch cycle. changed reports whether the
// result differs from the previous snapshot of the same kind.
type fetchFunc func(ctx context.Context) (msg tea.Msg, changed bool, err error)

// Runtime owns the background fetchers and the bounded data channel.
// One goroutine per data kind runs its own timer and throttle; results
// cross into the UI loop only as messages on Events(). User input never
// travels through here, so a full data channel can never block a
// keystroke.
type Runtime struct {
	fetcher   slurm.Fetcher
	intervals Intervals
	data      chan tea.Msg
	jobsKick  chan struct{}

	mu        sync.Mutex
	jobFilter slurm.JobFilter
}

// NewRuntime builds a Runtime around the given fetcher.
func NewRuntime(fetcher slurm.Fetcher, intervals Intervals, initialFilter slurm.JobFilter) *Runtime {
	return &Runtime{
		fetcher:   fetcher,
		intervals: intervals,
		data:      make(chan tea.Msg, dataChannelCapacity),
		jobsKick:  make(chan struct{}, 1),
		jobFilter: initialFilter,
	}
}

// Events is the bounded data channel the UI drains, one message per
// receive command.
func (r *Runtime) Events() <-chan tea.Msg {
	return r.data
}

// JobFilter returns the filter the jobs fetcher will use next cycle.
func (r *Runtime) JobFilter() slurm.JobFilter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobFilter
}

// SetJobFilter swaps the jobs filter and kicks an immediate refetch so
// toggling show-all or cycling accounts reflects without waiting out
// the interval.
func (r *Runtime) SetJobFilter(filter slurm.JobFilter) {
	r.mu.Lock()
	r.jobFilter = filter
	r.mu.Unlock()
	r.KickJobs()
}

// KickJobs schedules an immediate jobs refetch. The kick channel has
// capacity one; a pending kick already covers this request.
func (r *Runtime) KickJobs() {
	select {
	case r.jobsKick <- struct{}{}:
	default:
	}
}

// Start launches one fetcher goroutine per data kind. All of them stop
// when the context is cancelled.
func (r *Runtime) Start(ctx context.Context) {
	iv := r.intervals
	go r.runFetcher(ctx, ui.KindJobs, r.newThrottle(iv.Jobs), r.jobsFetch(), r.jobsKick)
	go r.runFetcher(ctx, ui.KindNodes, r.newThrottle(iv.Nodes), r.nodesFetch(), nil)
	go r.runFetcher(ctx, ui.KindFairshare, r.newThrottle(iv.Fairshare), r.fairshareFetch(), nil)
	go r.runFetcher(ctx, ui.KindScheduler, r.newThrottle(iv.Scheduler), r.schedulerFetch(), nil)
}

func (r *Runtime) newThrottle(base time.Duration) *Throttle {
	idleAfter := 1
	if base > 0 && r.intervals.IdleThreshold > base {
		idleAfter = int(r.intervals.IdleThreshold / base)
	}
	return NewThrottle(base, r.intervals.MaxBackoff, r.intervals.IdleSlowdown, idleAfter)
}

// runFetcher is the per-kind loop: wait out the throttle interval (or
// a kick), run one fetch, report the outcome. At most one fetch of
// this kind is ever in flight because only this loop starts one, and
// a full data channel skips the cycle outright.
func (r *Runtime) runFetcher(ctx context.Context, kind ui.DataKind, throttle *Throttle, fetch fetchFunc, kick <-chan struct{}) {
	timer := time.NewTimer(0) // first fetch fires immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		if len(r.data) == cap(r.data) {
			// Backpressure: the consumer is behind, adding another
			// snapshot helps nobody. Skip this cycle entirely.
			log.Printf("%s: data channel full, skipping fetch cycle", kind)
			timer.Reset(throttle.Interval())
			continue
		}

		msg, changed, err := fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			persistent := throttle.RecordFailure()
			log.Printf("%s fetch failed (streak %d): %v", kind, throttle.Failures(), err)
			r.trySend(ui.FetchErrMsg{Kind: kind, Err: err, Persistent: persistent})
		} else {
			throttle.RecordSuccess(changed)
			r.trySend(msg)
		}
		timer.Reset(throttle.Interval())
	}
}

// trySend delivers without ever blocking; a full channel drops the
// message and reports false.
func (r *Runtime) trySend(msg tea.Msg) bool {
	select {
	case r.data <- msg:
		return true
	default:
		log.Printf("data channel full, dropping %T", msg)
		return false
	}
}

func (r *Runtime) jobsFetch() fetchFunc {
	var prev []model.Job
	return func(ctx context.Context) (tea.Msg, bool, error) {
		jobs, err := r.fetcher.FetchJobs(ctx, r.JobFilter())
		if err != nil {
			return nil, false, err
		}
		changed := !reflect.DeepEqual(prev, jobs)
		prev = jobs
		return ui.JobsMsg{Jobs: jobs, FetchedAt: time.Now()}, changed, nil
	}
}

func (r *Runtime) nodesFetch() fetchFunc {
	var prev []model.Node
	return func(ctx context.Context) (tea.Msg, bool, error) {
		nodes, err := r.fetcher.FetchNodes(ctx, slurm.NodeFilter{})
		if err != nil {
			return nil, false, err
		}
		changed := !reflect.DeepEqual(prev, nodes)
		prev = nodes
		return ui.NodesMsg{Nodes: nodes, FetchedAt: time.Now()}, changed, nil
	}
}

func (r *Runtime) fairshareFetch() fetchFunc {
	var prev []model.FairshareEntry
	return func(ctx context.Context) (tea.Msg, bool, error) {
		entries, err := r.fetcher.FetchFairshare(ctx)
		if err != nil {
			return nil, false, err
		}
		changed := !reflect.DeepEqual(prev, entries)
		prev = entries
		return ui.FairshareMsg{Entries: entries, FetchedAt: time.Now()}, changed, nil
	}
}

func (r *Runtime) schedulerFetch() fetchFunc {
	var prev model.SchedulerStats
	var havePrev bool
	return func(ctx context.Context) (tea.Msg, bool, error) {
		stats, err := r.fetcher.FetchSchedulerStats(ctx)
		if err != nil {
			return nil, false, err
		}
		// FetchedAt always differs; compare the payload only.
		cmp := stats
		cmp.FetchedAt = time.Time{}
		prevCmp := prev
		prevCmp.FetchedAt = time.Time{}
		changed := !havePrev || cmp != prevCmp
		prev = stats
		havePrev = true
		return ui.SchedStatsMsg{Stats: stats}, changed, nil
	}
}

// Cancel runs scancel off the interactive path and reports the result
// as a data event. A successful cancel kicks the jobs fetcher so the
// list reflects it promptly.
func (r *Runtime) Cancel(ctx context.Context, jobID int64) {
	go func() {
		err := r.fetcher.CancelJob(ctx, jobID)
		select {
		case r.data <- ui.CancelResultMsg{JobID: jobID, Err: err}:
		case <-ctx.Done():
			return
		}
		if err == nil {
			r.KickJobs()
		}
	}()
}
