package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Job is one squeue record. Jobs are immutable values: each refresh
// replaces the whole slice, and identity across refreshes is the job id.
type Job struct {
	JobID       int64     `json:"job_id"`
	ArrayJobID  TimeValue `json:"array_job_id"`
	ArrayTask   TimeValue `json:"array_task_id"`
	Name        string    `json:"name"`
	UserName    string    `json:"user_name"`
	GroupName   string    `json:"group_name"`
	Account     string    `json:"account"`
	Partition   string    `json:"partition"`
	State       []string  `json:"job_state"`
	Nodes       string    `json:"nodes"`
	TresAlloc   string    `json:"tres_alloc_str"`
	CPUsPerTask TimeValue `json:"cpus_per_task"`
	Tasks       TimeValue `json:"tasks"`
	SubmitTime  TimeValue `json:"submit_time"`
	StartTime   TimeValue `json:"start_time"`
	EndTime     TimeValue `json:"end_time"`
	TimeLimit   TimeValue `json:"time_limit"` // minutes
	QOS         string    `json:"qos"`
	Priority    TimeValue `json:"priority"`
	Reason      string    `json:"state_reason"`
	WorkDir     string    `json:"current_working_directory"`
}

// PrimaryState collapses the compound state to one canonical token via
// the job priority table.
func (j *Job) PrimaryState() string {
	return PrimaryState(j.State, JobStatePriority)
}

// IsRunning and friends test raw tokens, independent of display priority.
func (j *Job) IsRunning() bool    { return HasState(j.State, "RUNNING") }
func (j *Job) IsPending() bool    { return HasState(j.State, "PENDING") }
func (j *Job) IsCompleting() bool { return HasState(j.State, "COMPLETING") }

// IsArray reports whether this record belongs to a job array.
func (j *Job) IsArray() bool {
	_, ok := j.ArrayJobID.Value()
	return ok
}

// DisplayID renders "base_task" for array members and the plain id otherwise.
func (j *Job) DisplayID() string {
	if task, ok := j.ArrayTask.Value(); ok {
		if base, ok := j.ArrayJobID.Value(); ok && base > 0 {
			return fmt.Sprintf("%d_%d", base, task)
		}
	}
	return strconv.FormatInt(j.JobID, 10)
}

// CPUs is the total allocated CPU count derived from tasks x cpus-per-task.
func (j *Job) CPUs() int64 {
	per, _ := j.CPUsPerTask.Value()
	if per < 1 {
		per = 1
	}
	tasks, _ := j.Tasks.Value()
	if tasks < 1 {
		tasks = 1
	}
	return per * tasks
}

// Elapsed is the wall time since start for a started job, zero otherwise.
func (j *Job) Elapsed(now time.Time) time.Duration {
	start, ok := j.StartTime.Time()
	if !ok || start.After(now) {
		return 0
	}
	return now.Sub(start)
}

// Remaining returns the time left before the limit for a running job.
// The second result is false when the job has no limit, an infinite
// limit, or has not started.
func (j *Job) Remaining(now time.Time) (time.Duration, bool) {
	limitMin, ok := j.TimeLimit.Value()
	if !ok || limitMin <= 0 || !j.IsRunning() {
		return 0, false
	}
	start, ok := j.StartTime.Time()
	if !ok {
		return 0, false
	}
	remaining := time.Duration(limitMin)*time.Minute - now.Sub(start)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// GPUAlloc describes GPUs taken from the job's TRES allocation string.
type GPUAlloc struct {
	Count int64
	Type  string
}

// Display renders "2xL40S" or "2" when the type is unknown.
func (g GPUAlloc) Display() string {
	if g.Count == 0 {
		return "-"
	}
	if g.Type == "" {
		return strconv.FormatInt(g.Count, 10)
	}
	return fmt.Sprintf("%dx%s", g.Count, strings.ToUpper(g.Type))
}

// GPUs parses the allocated GPU count and type out of tres_alloc_str,
// which looks like "cpu=16,mem=128G,node=1,billing=16,gres/gpu:l40s=2".
// A bare "gres/gpu=N" entry yields a count with no type.
func (j *Job) GPUs() GPUAlloc {
	var alloc GPUAlloc
	for _, item := range strings.Split(j.TresAlloc, ",") {
		key, value, ok := strings.Cut(item, "=")
		if !ok || !strings.HasPrefix(key, "gres/gpu") {
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		alloc.Count += n
		if _, typ, ok := strings.Cut(key, "gres/gpu:"); ok && alloc.Type == "" {
			alloc.Type = typ
		}
	}
	return alloc
}

// TresMap splits tres_alloc_str into key/value pairs for the detail view.
func (j *Job) TresMap() map[string]string {
	out := make(map[string]string)
	for _, item := range strings.Split(j.TresAlloc, ",") {
		if key, value, ok := strings.Cut(item, "="); ok {
			out[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return out
}

// Memory returns the allocated memory string from TRES ("128G"), or "-".
func (j *Job) Memory() string {
	if mem, ok := j.TresMap()["mem"]; ok && mem != "" {
		return mem
	}
	return "-"
}
