package ui

import (
	"sort"
	"strings"
	"time"

	"github.com/hochej/cmon/internal/model"
)

// JobSortColumn selects which column orders the jobs list.
type JobSortColumn int

const (
	SortJobID JobSortColumn = iota
	SortName
	SortAccount
	SortPartition
	SortState
	SortTime
	SortPriority
	SortGPUs
)

func (c JobSortColumn) Label() string {
	switch c {
	case SortJobID:
		return "Job ID"
	case SortName:
		return "Name"
	case SortAccount:
		return "Account"
	case SortPartition:
		return "Partition"
	case SortState:
		return "State"
	case SortTime:
		return "Time"
	case SortPriority:
		return "Priority"
	case SortGPUs:
		return "GPUs"
	default:
		return "?"
	}
}

// sortColumns is the fixed menu order.
var sortColumns = []JobSortColumn{
	SortJobID, SortName, SortAccount, SortPartition,
	SortState, SortTime, SortPriority, SortGPUs,
}

// statePriorityRank orders canonical job states by their position in
// the priority table, so sorting by state groups attention-worthy
// states first.
func statePriorityRank(state string) int {
	for i, class := range model.JobStatePriority {
		if class.Name == state {
			return i
		}
	}
	return len(model.JobStatePriority)
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortedFilteredJobs returns indices into jobs, filtered then ordered
// by the given column and direction. The sort is stable so reordering
// the same snapshot twice gives the same result.
func SortedFilteredJobs(jobs []model.Job, filter string, column JobSortColumn, ascending bool) []int {
	indices := make([]int, 0, len(jobs))
	for i := range jobs {
		if JobMatchesFilter(&jobs[i], filter) {
			indices = append(indices, i)
		}
	}

	now := time.Now()
	sort.SliceStable(indices, func(x, y int) bool {
		a, b := &jobs[indices[x]], &jobs[indices[y]]
		var cmp int
		switch column {
		case SortName:
			cmp = compareStrings(a.Name, b.Name)
		case SortAccount:
			cmp = compareStrings(a.Account, b.Account)
		case SortPartition:
			cmp = compareStrings(a.Partition, b.Partition)
		case SortState:
			cmp = compareInt64(int64(statePriorityRank(a.PrimaryState())), int64(statePriorityRank(b.PrimaryState())))
		case SortTime:
			cmp = compareInt64(int64(a.Elapsed(now)), int64(b.Elapsed(now)))
		case SortPriority:
			pa, _ := a.Priority.Value()
			pb, _ := b.Priority.Value()
			cmp = compareInt64(pa, pb)
		case SortGPUs:
			cmp = compareInt64(a.GPUs().Count, b.GPUs().Count)
		default:
			cmp = compareInt64(a.JobID, b.JobID)
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return indices
}
