package ui

import (
	"testing"

	"github.com/hochej/cmon/internal/model"
)

func filterJob() model.Job {
	return model.Job{
		JobID:     12345,
		Name:      "train_model",
		UserName:  "ada",
		Account:   "research",
		Partition: "gpu",
		State:     []string{"RUNNING"},
		Nodes:     "node001",
		QOS:       "normal",
		Reason:    "None",
		TresAlloc: "cpu=4,mem=32G,gres/gpu:a100=2",
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	job := filterJob()
	if !JobMatchesFilter(&job, "") {
		t.Error("empty filter must match")
	}
	if !JobMatchesFilter(&job, "   ") {
		t.Error("whitespace filter must match")
	}
}

func TestFilterPlainText(t *testing.T) {
	job := filterJob()
	cases := []struct {
		filter string
		want   bool
	}{
		{"train", true},
		{"ada", true},
		{"research", true},
		{"gpu", true},
		{"123", true},
		{"nonexistent", false},
		// Plain text does not search qos or reason.
		{"normal", false},
	}
	for _, tc := range cases {
		if got := JobMatchesFilter(&job, tc.filter); got != tc.want {
			t.Errorf("filter %q = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestFilterFieldPrefixes(t *testing.T) {
	job := filterJob()
	cases := []struct {
		filter string
		want   bool
	}{
		{"user:ada", true},
		{"u:ada", true},
		{"user:bob", false},
		{"account:res", true},
		{"acct:res", true},
		{"a:res", true},
		{"partition:gpu", true},
		{"part:gpu", true},
		{"p:cpu", false},
		{"state:running", true},
		{"s:run", true},
		{"state:pending", false},
		{"qos:normal", true},
		{"q:norm", true},
		{"node:node001", true},
		{"nodes:002", false},
		{"id:12345", true},
		{"jobid:123", true},
		{"job:999", false},
		{"name:train", true},
		{"n:train", true},
		{"reason:none", true},
		{"r:priority", false},
		// Unknown prefixes match nothing.
		{"bogus:value", false},
	}
	for _, tc := range cases {
		if got := JobMatchesFilter(&job, tc.filter); got != tc.want {
			t.Errorf("filter %q = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestFilterGPU(t *testing.T) {
	withGPU := filterJob()
	noGPU := filterJob()
	noGPU.TresAlloc = "cpu=4,mem=8G"

	cases := []struct {
		job    *model.Job
		filter string
		want   bool
	}{
		{&withGPU, "gpu:2", true},
		{&withGPU, "gpu:1", false},
		{&withGPU, "gpu:yes", true},
		{&withGPU, "gpu:any", true},
		{&withGPU, "gpu:no", false},
		{&withGPU, "gpu:a100", true},
		{&withGPU, "g:a100", true},
		{&withGPU, "gpus:v100", false},
		{&noGPU, "gpu:no", true},
		{&noGPU, "gpu:none", true},
		{&noGPU, "gpu:yes", false},
		{&noGPU, "gpu:0", true},
		{&noGPU, "gpu:a100", false},
	}
	for _, tc := range cases {
		if got := JobMatchesFilter(tc.job, tc.filter); got != tc.want {
			t.Errorf("filter %q = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestFilterNegationAndCombination(t *testing.T) {
	job := filterJob()

	if JobMatchesFilter(&job, "!partition:gpu") {
		t.Error("negated matching term must exclude")
	}
	if !JobMatchesFilter(&job, "!partition:cpu") {
		t.Error("negated non-matching term must include")
	}

	// Space-separated terms AND together.
	if !JobMatchesFilter(&job, "user:ada partition:gpu") {
		t.Error("both terms match, job must match")
	}
	if JobMatchesFilter(&job, "user:ada partition:cpu") {
		t.Error("one failing term must exclude")
	}
	if !JobMatchesFilter(&job, "user:ada !state:pending gpu:yes") {
		t.Error("mixed positive and negated terms must match")
	}
}

func TestFilterIdempotent(t *testing.T) {
	jobs := []model.Job{filterJob(), filterJob(), filterJob()}
	jobs[1].UserName = "bob"
	jobs[2].Partition = "cpu"

	first := SortedFilteredJobs(jobs, "user:ada", SortJobID, true)
	second := SortedFilteredJobs(jobs, "user:ada", SortJobID, true)
	if len(first) != len(second) {
		t.Fatalf("filter not stable: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("index %d differs: %d vs %d", i, first[i], second[i])
		}
	}
}
