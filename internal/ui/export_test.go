package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hochej/cmon/internal/model"
)

func TestEscapeCSV(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"", ""},
		{"hello,world", `"hello,world"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line1\nline2", "\"line1\nline2\""},
	}
	for _, tc := range cases {
		if got := EscapeCSV(tc.in); got != tc.want {
			t.Errorf("EscapeCSV(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	if got := exportFilename("jobs", ExportJSON, at); got != "cmon_jobs_20260314_150926.json" {
		t.Errorf("filename = %q", got)
	}
	if got := exportFilename("nodes", ExportCSV, at); got != "cmon_nodes_20260314_150926.csv" {
		t.Errorf("filename = %q", got)
	}
}

func TestExportJobsCSV(t *testing.T) {
	jobs := []model.Job{
		{JobID: 1, Name: "plain", UserName: "ada", Account: "ml", Partition: "gpu", State: []string{"RUNNING"}, Nodes: "n1"},
		{JobID: 2, Name: "with,comma", UserName: "bob", Account: "bio", Partition: "cpu", State: []string{"PENDING"}},
	}
	content, err := ExportJobs(jobs, ExportCSV)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "job_id,name,user,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], `"with,comma"`) {
		t.Errorf("comma field not quoted: %q", lines[2])
	}
}

func TestExportJobsJSONRoundTrips(t *testing.T) {
	jobs := []model.Job{
		{JobID: 7, Name: "decode_me", UserName: "ada", State: []string{"RUNNING"}},
	}
	content, err := ExportJobs(jobs, ExportJSON)
	if err != nil {
		t.Fatal(err)
	}
	var back []model.Job
	if err := json.Unmarshal([]byte(content), &back); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(back) != 1 || back[0].JobID != 7 || back[0].Name != "decode_me" {
		t.Errorf("round trip = %+v", back)
	}
}

// Export writes exactly the rows the caller passes, so the visible
// filtered slice is what lands in the file.
func TestExportReflectsVisibleSlice(t *testing.T) {
	jobs := []model.Job{
		{JobID: 1, UserName: "ada", Name: "keep"},
		{JobID: 2, UserName: "bob", Name: "drop"},
		{JobID: 3, UserName: "ada", Name: "keep2"},
	}
	indices := SortedFilteredJobs(jobs, "user:ada", SortJobID, false)
	visible := make([]model.Job, 0, len(indices))
	for _, i := range indices {
		visible = append(visible, jobs[i])
	}

	content, err := ExportJobs(visible, ExportCSV)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(content, "drop") {
		t.Error("filtered-out job leaked into export")
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 2 + header", len(lines)-1)
	}
	// Descending sort order preserved in file order.
	if !strings.HasPrefix(lines[1], "3,") || !strings.HasPrefix(lines[2], "1,") {
		t.Errorf("order not preserved: %q, %q", lines[1], lines[2])
	}
}

func TestExportNodesCSVHasReason(t *testing.T) {
	var node model.Node
	node.Reason = model.Reason{Description: "bad, disk"}
	content, err := ExportNodes([]model.Node{node}, ExportCSV)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(content, `"bad, disk"`) {
		t.Errorf("reason not escaped: %q", content)
	}
}
