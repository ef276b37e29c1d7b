package ui

import (
	"testing"

	"github.com/hochej/cmon/internal/model"
)

func sortJobs() []model.Job {
	return []model.Job{
		{JobID: 30, Name: "charlie", Account: "bio", Partition: "cpu", State: []string{"PENDING"}, Priority: model.TimeValueOf(100)},
		{JobID: 10, Name: "Alpha", Account: "ml", Partition: "gpu", State: []string{"RUNNING"}, Priority: model.TimeValueOf(300), TresAlloc: "gres/gpu:a100=4"},
		{JobID: 20, Name: "bravo", Account: "bio", Partition: "gpu", State: []string{"FAILED"}, Priority: model.TimeValueOf(200), TresAlloc: "gres/gpu=1"},
	}
}

func ids(jobs []model.Job, indices []int) []int64 {
	out := make([]int64, len(indices))
	for i, idx := range indices {
		out[i] = jobs[idx].JobID
	}
	return out
}

func TestSortByJobID(t *testing.T) {
	jobs := sortJobs()

	got := ids(jobs, SortedFilteredJobs(jobs, "", SortJobID, true))
	want := []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending = %v, want %v", got, want)
		}
	}

	got = ids(jobs, SortedFilteredJobs(jobs, "", SortJobID, false))
	want = []int64{30, 20, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending = %v, want %v", got, want)
		}
	}
}

func TestSortByNameCaseInsensitive(t *testing.T) {
	jobs := sortJobs()
	got := ids(jobs, SortedFilteredJobs(jobs, "", SortName, true))
	// Alpha < bravo < charlie regardless of case.
	want := []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("by name = %v, want %v", got, want)
		}
	}
}

func TestSortByPriorityAndGPUs(t *testing.T) {
	jobs := sortJobs()

	got := ids(jobs, SortedFilteredJobs(jobs, "", SortPriority, false))
	want := []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("by priority desc = %v, want %v", got, want)
		}
	}

	got = ids(jobs, SortedFilteredJobs(jobs, "", SortGPUs, false))
	want = []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("by gpus desc = %v, want %v", got, want)
		}
	}
}

func TestSortByStateUsesPriorityTable(t *testing.T) {
	jobs := sortJobs()
	indices := SortedFilteredJobs(jobs, "", SortState, true)
	// Priority table order: RUNNING before PENDING before FAILED.
	got := ids(jobs, indices)
	want := []int64{10, 30, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("by state = %v, want %v", got, want)
		}
	}
}

func TestSortAppliesFilterFirst(t *testing.T) {
	jobs := sortJobs()
	indices := SortedFilteredJobs(jobs, "account:bio", SortJobID, true)
	if len(indices) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(indices))
	}
	if jobs[indices[0]].JobID != 20 || jobs[indices[1]].JobID != 30 {
		t.Errorf("filtered order = %v", ids(jobs, indices))
	}
}
