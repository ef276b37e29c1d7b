package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hochej/cmon/internal/model"
	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

// fakeFetcher serves canned data and counts concurrent job fetches so
// tests can assert the one-in-flight guarantee.
type fakeFetcher struct {
	jobs      []model.Job
	jobsErr   error
	inFlight  atomic.Int32
	maxSeen   atomic.Int32
	fetches   atomic.Int32
	cancelled atomic.Int64
	cancelErr error
}

func (f *fakeFetcher) FetchJobs(ctx context.Context, _ slurm.JobFilter) ([]model.Job, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxSeen.Load()
		if cur <= max || f.maxSeen.CompareAndSwap(max, cur) {
			break
		}
	}
	f.fetches.Add(1)
	time.Sleep(time.Millisecond)
	return f.jobs, f.jobsErr
}

func (f *fakeFetcher) FetchNodes(context.Context, slurm.NodeFilter) ([]model.Node, error) {
	return nil, nil
}

func (f *fakeFetcher) FetchFairshare(context.Context) ([]model.FairshareEntry, error) {
	return nil, nil
}

func (f *fakeFetcher) FetchSchedulerStats(context.Context) (model.SchedulerStats, error) {
	return model.SchedulerStats{Available: true}, nil
}

func (f *fakeFetcher) CancelJob(_ context.Context, jobID int64) error {
	f.cancelled.Store(jobID)
	return f.cancelErr
}

func testIntervals() Intervals {
	return Intervals{
		Jobs:       5 * time.Millisecond,
		Nodes:      time.Hour,
		Fairshare:  time.Hour,
		Scheduler:  time.Hour,
		MaxBackoff: 50 * time.Millisecond,
	}
}

func waitFor(t *testing.T, events <-chan interface{}, timeout time.Duration, match func(msg interface{}) bool) interface{} {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case msg := <-events:
			if match(msg) {
				return msg
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
			return nil
		}
	}
}

func TestRuntimeDeliversSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{jobs: []model.Job{{JobID: 1}}}
	rt := NewRuntime(fetcher, testIntervals(), slurm.JobFilter{})
	rt.Start(ctx)

	raw := make(chan interface{}, 1)
	go func() {
		for msg := range rt.Events() {
			raw <- msg
		}
	}()

	msg := waitFor(t, raw, time.Second, func(msg interface{}) bool {
		_, ok := msg.(ui.JobsMsg)
		return ok
	})
	jobs := msg.(ui.JobsMsg)
	if len(jobs.Jobs) != 1 || jobs.Jobs[0].JobID != 1 {
		t.Fatalf("snapshot = %+v", jobs.Jobs)
	}
}

func TestRuntimeEmitsFetchErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{jobsErr: errors.New("squeue exploded")}
	rt := NewRuntime(fetcher, testIntervals(), slurm.JobFilter{})
	rt.Start(ctx)

	raw := make(chan interface{}, 1)
	go func() {
		for msg := range rt.Events() {
			raw <- msg
		}
	}()

	// With a failure streak the error eventually flips to persistent.
	msg := waitFor(t, raw, 2*time.Second, func(msg interface{}) bool {
		em, ok := msg.(ui.FetchErrMsg)
		return ok && em.Persistent
	})
	em := msg.(ui.FetchErrMsg)
	if em.Kind != ui.KindJobs {
		t.Errorf("Kind = %v, want jobs", em.Kind)
	}
}

func TestRuntimeBackpressureSkipsCycles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{jobs: []model.Job{{JobID: 1}}}
	rt := NewRuntime(fetcher, testIntervals(), slurm.JobFilter{})

	// Pre-fill the channel; nobody drains it.
	for i := 0; i < dataChannelCapacity; i++ {
		rt.data <- struct{}{}
	}
	rt.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	// Every cycle saw a full channel and skipped the dispatch.
	if got := fetcher.fetches.Load(); got != 0 {
		t.Errorf("fetches with full channel = %d, want 0", got)
	}
	if got := len(rt.data); got != dataChannelCapacity {
		t.Errorf("channel len = %d, want unchanged %d", got, dataChannelCapacity)
	}
}

func TestRuntimeSingleInFlightPerKind(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{jobs: []model.Job{{JobID: 1}}}
	intervals := testIntervals()
	intervals.Jobs = time.Millisecond
	rt := NewRuntime(fetcher, intervals, slurm.JobFilter{})
	rt.Start(ctx)

	// Kick repeatedly while cycles run; drain events concurrently.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rt.Events():
			}
		}
	}()
	for i := 0; i < 50; i++ {
		rt.KickJobs()
		time.Sleep(time.Millisecond)
	}

	if max := fetcher.maxSeen.Load(); max > 1 {
		t.Errorf("max concurrent job fetches = %d, want 1", max)
	}
}

func TestRuntimeCancelReportsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{}
	rt := NewRuntime(fetcher, testIntervals(), slurm.JobFilter{})
	// No Start: only the cancel goroutine should write.

	rt.Cancel(ctx, 4242)

	select {
	case msg := <-rt.Events():
		result, ok := msg.(ui.CancelResultMsg)
		if !ok {
			t.Fatalf("msg = %T, want CancelResultMsg", msg)
		}
		if result.JobID != 4242 || result.Err != nil {
			t.Errorf("result = %+v", result)
		}
	case <-time.After(time.Second):
		t.Fatal("no cancel result delivered")
	}
	if got := fetcher.cancelled.Load(); got != 4242 {
		t.Errorf("cancelled job = %d, want 4242", got)
	}
}

func TestRuntimeSetJobFilterKicks(t *testing.T) {
	rt := NewRuntime(&fakeFetcher{}, testIntervals(), slurm.JobFilter{})

	rt.SetJobFilter(slurm.JobFilter{Users: []string{"ada"}})
	if got := rt.JobFilter(); len(got.Users) != 1 || got.Users[0] != "ada" {
		t.Errorf("filter = %+v", got)
	}
	select {
	case <-rt.jobsKick:
	default:
		t.Error("SetJobFilter must queue a kick")
	}
}
