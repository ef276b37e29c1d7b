package ui

import (
	"strconv"
	"strings"

	"github.com/hochej/cmon/internal/model"
)

// JobMatchesFilter reports whether a job matches the filter string.
//
// The filter is a space-separated list of terms, all of which must
// match. A plain term searches name, user, account, partition, and job
// id. A field:value term restricts the match to one field; a leading !
// negates the term. The gpu: field understands a count, yes/no, or a
// GPU type substring.
func JobMatchesFilter(job *model.Job, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}

	for _, term := range strings.Fields(filter) {
		negated := strings.HasPrefix(term, "!")
		if negated {
			term = term[1:]
		}

		var matches bool
		if field, value, ok := strings.Cut(term, ":"); ok {
			matches = jobMatchesField(job, strings.ToLower(field), strings.ToLower(value))
		} else {
			matches = jobMatchesAnyField(job, term)
		}

		if matches == negated {
			return false
		}
	}
	return true
}

func jobMatchesField(job *model.Job, field, value string) bool {
	switch field {
	case "name", "n":
		return strings.Contains(strings.ToLower(job.Name), value)
	case "user", "u":
		return strings.Contains(strings.ToLower(job.UserName), value)
	case "account", "acct", "a":
		return strings.Contains(strings.ToLower(job.Account), value)
	case "partition", "part", "p":
		return strings.Contains(strings.ToLower(job.Partition), value)
	case "state", "s":
		return strings.Contains(strings.ToLower(job.PrimaryState()), value)
	case "qos", "q":
		return strings.Contains(strings.ToLower(job.QOS), value)
	case "gpu", "gpus", "g":
		return jobMatchesGPU(job, value)
	case "node", "nodes":
		return strings.Contains(strings.ToLower(job.Nodes), value)
	case "id", "job", "jobid":
		return strings.Contains(strconv.FormatInt(job.JobID, 10), value)
	case "reason", "r":
		return strings.Contains(strings.ToLower(job.Reason), value)
	default:
		// Unknown field prefix matches nothing.
		return false
	}
}

// jobMatchesGPU handles the gpu: filter value: an exact count, a
// yes/no boolean, or a type substring.
func jobMatchesGPU(job *model.Job, value string) bool {
	gpus := job.GPUs()
	if count, err := strconv.ParseInt(value, 10, 64); err == nil {
		return gpus.Count == count
	}
	switch value {
	case "yes", "true", "any":
		return gpus.Count > 0
	case "no", "false", "none":
		return gpus.Count == 0
	}
	return gpus.Type != "" && strings.Contains(strings.ToLower(gpus.Type), value)
}

func jobMatchesAnyField(job *model.Job, term string) bool {
	value := strings.ToLower(term)
	return strings.Contains(strings.ToLower(job.Name), value) ||
		strings.Contains(strings.ToLower(job.UserName), value) ||
		strings.Contains(strings.ToLower(job.Account), value) ||
		strings.Contains(strings.ToLower(job.Partition), value) ||
		strings.Contains(strconv.FormatInt(job.JobID, 10), value)
}
