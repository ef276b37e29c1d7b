package slurm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner records invocations and serves canned output per tool name.
type fakeRunner struct {
	calls  []string
	output map[string][]byte
	err    map[string]error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if err := f.err[name]; err != nil {
		return nil, err
	}
	return f.output[name], nil
}

func newTestClient(f *fakeRunner) *Client {
	c := NewClient(nil)
	c.run = f.run
	return c
}

func TestFetchJobsBuildsFilterFlags(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"squeue": []byte(`{"jobs": [{"job_id": 1, "name": "a"}, {"job_id": 0}], "errors": []}`),
	}}
	client := newTestClient(fake)

	jobs, err := client.FetchJobs(context.Background(), JobFilter{
		Users:      []string{"ada"},
		Partitions: []string{"gpu", "cpu"},
		States:     []string{"RUNNING"},
		Accounts:   []string{"ml-lab"},
	})
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	// The id-0 placeholder record is dropped.
	if len(jobs) != 1 || jobs[0].JobID != 1 {
		t.Fatalf("jobs = %+v, want the single real record", jobs)
	}

	want := "squeue --json -t RUNNING -u ada -A ml-lab -p gpu,cpu"
	if len(fake.calls) != 1 || fake.calls[0] != want {
		t.Errorf("call = %q, want %q", fake.calls[0], want)
	}
}

func TestFetchJobsSurfacesSlurmErrors(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"squeue": []byte(`{"jobs": [], "errors": ["Invalid user: nobody"]}`),
	}}
	client := newTestClient(fake)

	_, err := client.FetchJobs(context.Background(), JobFilter{})
	if err == nil || !strings.Contains(err.Error(), "Invalid user") {
		t.Fatalf("err = %v, want squeue error payload surfaced", err)
	}
}

func TestFetchJobsCommandFailure(t *testing.T) {
	fake := &fakeRunner{err: map[string]error{
		"squeue": errors.New("squeue: Protocol authentication error"),
	}}
	client := newTestClient(fake)

	if _, err := client.FetchJobs(context.Background(), JobFilter{}); err == nil {
		t.Fatal("command failure must propagate")
	}
}

func TestFetchNodes(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"sinfo": []byte(`{"sinfo": [
			{"nodes": {"nodes": ["n1"]}, "node": {"state": ["IDLE"]}, "partition": {"name": "cpu"}},
			{"nodes": {"nodes": []}}
		], "errors": []}`),
	}}
	client := newTestClient(fake)

	nodes, err := client.FetchNodes(context.Background(), NodeFilter{Partition: "cpu"})
	if err != nil {
		t.Fatalf("FetchNodes: %v", err)
	}
	// Nameless records are dropped.
	if len(nodes) != 1 || nodes[0].Name() != "n1" {
		t.Fatalf("nodes = %+v, want the single named record", nodes)
	}
	if want := "sinfo -N --json -p cpu"; fake.calls[0] != want {
		t.Errorf("call = %q, want %q", fake.calls[0], want)
	}
}

func TestFetchFairshare(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"sshare": []byte(`{"shares": {"shares": [{"name": "ml-lab", "parent": "root"}]}, "errors": []}`),
	}}
	client := newTestClient(fake)

	entries, err := client.FetchFairshare(context.Background())
	if err != nil {
		t.Fatalf("FetchFairshare: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "ml-lab" {
		t.Fatalf("entries = %+v", entries)
	}
	if want := "sshare -a --json"; fake.calls[0] != want {
		t.Errorf("call = %q, want %q", fake.calls[0], want)
	}
}

func TestFetchSchedulerStatsDegradesOnFailure(t *testing.T) {
	fake := &fakeRunner{err: map[string]error{
		"sdiag": errors.New("sdiag: Access/permission denied"),
	}}
	client := newTestClient(fake)

	stats, err := client.FetchSchedulerStats(context.Background())
	if err != nil {
		t.Fatalf("sdiag failure must degrade, not error: %v", err)
	}
	if stats.Available {
		t.Error("stats must be unavailable after command failure")
	}
	if !strings.Contains(stats.Reason, "denied") {
		t.Errorf("Reason = %q, want the command error", stats.Reason)
	}
}

func TestFetchSchedulerStatsParses(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"sdiag": []byte("Jobs pending:   7\n\tMean cycle:   1200 microseconds\n"),
	}}
	client := newTestClient(fake)

	stats, err := client.FetchSchedulerStats(context.Background())
	if err != nil {
		t.Fatalf("FetchSchedulerStats: %v", err)
	}
	if !stats.Available || stats.JobsPending != 7 || stats.MeanCycleUs != 1200 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCancelJob(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{"scancel": nil}}
	client := newTestClient(fake)

	if err := client.CancelJob(context.Background(), 4242); err != nil {
		t.Fatalf("CancelJob: %v", err)
	}
	if want := "scancel 4242"; fake.calls[0] != want {
		t.Errorf("call = %q, want %q", fake.calls[0], want)
	}

	if err := client.CancelJob(context.Background(), 0); err == nil {
		t.Error("job id 0 must be rejected before shelling out")
	}
}

func TestProbe(t *testing.T) {
	fake := &fakeRunner{output: map[string][]byte{
		"sinfo": []byte("slurm 24.05.3\n"),
	}}
	client := newTestClient(fake)
	if err := client.Probe(context.Background()); err != nil {
		t.Fatalf("Probe: %v", err)
	}

	fake = &fakeRunner{err: map[string]error{"sinfo": errors.New("executable file not found")}}
	client = newTestClient(fake)
	if err := client.Probe(context.Background()); err == nil {
		t.Fatal("missing sinfo must fail the probe")
	}
}

func TestResolvePrefixesBinPath(t *testing.T) {
	var got string
	client := NewClient(func(name string) string { return "/opt/slurm/bin/" + name })
	client.run = func(_ context.Context, name string, _ ...string) ([]byte, error) {
		got = name
		return []byte(`{"jobs": [], "errors": []}`), nil
	}
	if _, err := client.FetchJobs(context.Background(), JobFilter{}); err != nil {
		t.Fatal(err)
	}
	if want := "/opt/slurm/bin/squeue"; got != want {
		t.Errorf("resolved = %q, want %q", got, want)
	}
}
