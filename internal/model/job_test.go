package model

import (
	"encoding/json"
	"testing"
	"time"
)

const sampleJobJSON = `{
	"job_id": 4242,
	"name": "train-llm",
	"user_name": "ada",
	"account": "ml-lab",
	"partition": "gpu",
	"job_state": ["RUNNING"],
	"nodes": "gpu-a[001-002]",
	"tres_alloc_str": "cpu=16,mem=128G,node=2,billing=16,gres/gpu:l40s=4",
	"cpus_per_task": {"set": true, "infinite": false, "number": 8},
	"tasks": {"set": true, "infinite": false, "number": 2},
	"submit_time": {"set": true, "infinite": false, "number": 1700000000},
	"start_time": {"set": true, "infinite": false, "number": 1700003600},
	"end_time": {"set": false, "infinite": false, "number": 0},
	"time_limit": {"set": true, "infinite": false, "number": 120},
	"qos": "normal",
	"state_reason": "None"
}`

func decodeJob(t *testing.T, data string) Job {
	t.Helper()
	var job Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	return job
}

func TestJobDecoding(t *testing.T) {
	job := decodeJob(t, sampleJobJSON)

	if job.JobID != 4242 {
		t.Errorf("JobID = %d, want 4242", job.JobID)
	}
	if job.PrimaryState() != "RUNNING" {
		t.Errorf("PrimaryState() = %q, want RUNNING", job.PrimaryState())
	}
	if job.CPUs() != 16 {
		t.Errorf("CPUs() = %d, want 16", job.CPUs())
	}
	if job.EndTime.IsSet() {
		t.Error("unset end_time decoded as set")
	}
	if job.Memory() != "128G" {
		t.Errorf("Memory() = %q, want 128G", job.Memory())
	}
}

func TestJobGPUParsing(t *testing.T) {
	tests := []struct {
		name      string
		tres      string
		wantCount int64
		wantType  string
	}{
		{"typed gpu", "cpu=16,mem=128G,gres/gpu:l40s=4", 4, "l40s"},
		{"untyped gpu", "cpu=4,gres/gpu=2", 2, ""},
		{"no gpu", "cpu=4,mem=16G,node=1", 0, ""},
		{"typed and untyped accumulate", "gres/gpu=1,gres/gpu:a100=2", 3, "a100"},
		{"empty string", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Job{TresAlloc: tt.tres}
			got := job.GPUs()
			if got.Count != tt.wantCount || got.Type != tt.wantType {
				t.Errorf("GPUs() = {%d %q}, want {%d %q}", got.Count, got.Type, tt.wantCount, tt.wantType)
			}
		})
	}
}

func TestJobRemaining(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)

	job := Job{
		State:     []string{"RUNNING"},
		StartTime: TimeValueOf(start.Unix()),
		TimeLimit: TimeValueOf(120), // minutes
	}

	remaining, ok := job.Remaining(start.Add(30 * time.Minute))
	if !ok || remaining != 90*time.Minute {
		t.Errorf("Remaining = (%v, %v), want (90m, true)", remaining, ok)
	}

	// Past the limit the remainder clamps at zero rather than going negative.
	remaining, ok = job.Remaining(start.Add(3 * time.Hour))
	if !ok || remaining != 0 {
		t.Errorf("overdue Remaining = (%v, %v), want (0, true)", remaining, ok)
	}

	// An infinite limit has no remaining time.
	job.TimeLimit = InfiniteTime()
	if _, ok := job.Remaining(start.Add(time.Minute)); ok {
		t.Error("infinite limit must report no remaining time")
	}

	// Pending jobs have not started consuming their limit.
	job.TimeLimit = TimeValueOf(120)
	job.State = []string{"PENDING"}
	if _, ok := job.Remaining(start.Add(time.Minute)); ok {
		t.Error("pending job must report no remaining time")
	}
}

func TestJobDisplayID(t *testing.T) {
	plain := Job{JobID: 100}
	if got := plain.DisplayID(); got != "100" {
		t.Errorf("DisplayID() = %q, want 100", got)
	}

	member := Job{JobID: 105, ArrayJobID: TimeValueOf(100), ArrayTask: TimeValueOf(5)}
	if got := member.DisplayID(); got != "100_5" {
		t.Errorf("array DisplayID() = %q, want 100_5", got)
	}
	if !member.IsArray() {
		t.Error("array member must report IsArray")
	}
	if plain.IsArray() {
		t.Error("plain job must not report IsArray")
	}
}

func TestGPUAllocDisplay(t *testing.T) {
	if got := (GPUAlloc{}).Display(); got != "-" {
		t.Errorf("empty Display() = %q, want -", got)
	}
	if got := (GPUAlloc{Count: 2, Type: "l40s"}).Display(); got != "2xL40S" {
		t.Errorf("Display() = %q, want 2xL40S", got)
	}
	if got := (GPUAlloc{Count: 3}).Display(); got != "3" {
		t.Errorf("untyped Display() = %q, want 3", got)
	}
}
