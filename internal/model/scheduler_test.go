package model

import "testing"

const sampleSdiag = `*******************************************************
sdiag output at Mon Jan 01 12:00:00 2026 (1767268800)
Data since      Mon Jan 01 00:00:00 2026 (1767225600)
*******************************************************
Server thread count:  3
Jobs submitted: 1500
Jobs started:   1400
Jobs completed: 1350
Jobs canceled:  20
Jobs failed:    5
Jobs pending:   120
Jobs running:   340

Main schedule statistics (microseconds):
	Last cycle:   45000
	Max cycle:    2100000
	Total cycles: 8000
	Mean cycle:   38000
	Mean depth cycle:  110

Backfilling stats
	Total backfilled jobs (since last slurm start): 640
	Last cycle when: Mon Jan 01 11:59:30 2026
	Backfill Last cycle:   310000 microseconds
	Backfill queue length: 95
	Backfill last depth cycle: 80
`

func TestParseSdiag(t *testing.T) {
	stats := ParseSdiag(sampleSdiag)

	if !stats.Available {
		t.Fatal("parsed stats must be available")
	}
	if stats.JobsPending != 120 || stats.JobsRunning != 340 {
		t.Errorf("jobs = pending %d running %d, want 120/340", stats.JobsPending, stats.JobsRunning)
	}
	if stats.LastCycleUs != 45000 || stats.MeanCycleUs != 38000 || stats.MaxCycleUs != 2100000 {
		t.Errorf("cycles = %d/%d/%d, want 45000/38000/2100000",
			stats.LastCycleUs, stats.MeanCycleUs, stats.MaxCycleUs)
	}
	if stats.BackfillLastCycleUs != 310000 {
		t.Errorf("backfill last cycle = %d, want 310000", stats.BackfillLastCycleUs)
	}
	if stats.BackfillQueueLength != 95 || stats.BackfillLastDepth != 80 {
		t.Errorf("backfill queue/depth = %d/%d, want 95/80",
			stats.BackfillQueueLength, stats.BackfillLastDepth)
	}
	if stats.BackfillTotalJobs != 640 {
		t.Errorf("backfill total = %d, want 640", stats.BackfillTotalJobs)
	}
}

func TestSchedulerHealthy(t *testing.T) {
	stats := SchedulerStats{Available: true, MeanCycleUs: 38000}
	if healthy, known := stats.Healthy(); !known || !healthy {
		t.Errorf("38ms mean cycle: Healthy() = (%v, %v), want (true, true)", healthy, known)
	}

	stats.MeanCycleUs = 6_000_000
	if healthy, known := stats.Healthy(); !known || healthy {
		t.Errorf("6s mean cycle: Healthy() = (%v, %v), want (false, true)", healthy, known)
	}

	if _, known := UnavailableStats("permission denied").Healthy(); known {
		t.Error("unavailable stats must not claim a health verdict")
	}

	stats.MeanCycleUs = 0
	if _, known := stats.Healthy(); known {
		t.Error("unreported mean cycle must not claim a health verdict")
	}
}

func TestMeanCycleDisplay(t *testing.T) {
	tests := []struct {
		us   int64
		want string
	}{
		{500, "500us"},
		{38000, "38.0ms"},
		{2_500_000, "2.5s"},
	}
	for _, tt := range tests {
		stats := SchedulerStats{Available: true, MeanCycleUs: tt.us}
		if got := stats.MeanCycleDisplay(); got != tt.want {
			t.Errorf("MeanCycleDisplay(%d) = %q, want %q", tt.us, got, tt.want)
		}
	}
	if got := UnavailableStats("no sdiag").MeanCycleDisplay(); got != "N/A" {
		t.Errorf("unavailable MeanCycleDisplay() = %q, want N/A", got)
	}
}

func TestParseSdiagGarbage(t *testing.T) {
	stats := ParseSdiag("sdiag: error: Protocol authentication error")
	if !stats.Available {
		t.Fatal("parser itself never fails; callers decide availability")
	}
	if stats.MeanCycleUs != 0 || stats.JobsPending != 0 {
		t.Error("unmatched output must leave fields zero")
	}
}
