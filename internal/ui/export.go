package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hochej/cmon/internal/model"
)

// ExportFormat selects the export file format.
type ExportFormat int

const (
	ExportJSON ExportFormat = iota
	ExportCSV
)

func (f ExportFormat) extension() string {
	if f == ExportCSV {
		return "csv"
	}
	return "json"
}

// EscapeCSV quotes a field when it contains a comma, quote, or
// newline; embedded quotes are doubled.
func EscapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// exportFilename builds cmon_<what>_<YYYYMMDD_HHMMSS>.<ext>.
func exportFilename(what string, format ExportFormat, now time.Time) string {
	return fmt.Sprintf("cmon_%s_%s.%s", what, now.Format("20060102_150405"), format.extension())
}

// ExportJobs renders the given jobs, in order, to the export format.
// Only what the caller passes is exported, so the file reflects the
// visible filtered and sorted slice, not the raw snapshot.
func ExportJobs(jobs []model.Job, format ExportFormat) (string, error) {
	if format == ExportJSON {
		return marshalJSON(jobs)
	}
	var b strings.Builder
	b.WriteString("job_id,name,user,account,partition,state,elapsed,nodes,cpus,gpus\n")
	now := time.Now()
	for i := range jobs {
		j := &jobs[i]
		fields := []string{
			j.DisplayID(),
			EscapeCSV(j.Name),
			EscapeCSV(j.UserName),
			EscapeCSV(j.Account),
			EscapeCSV(j.Partition),
			j.PrimaryState(),
			FormatDuration(j.Elapsed(now)),
			EscapeCSV(j.Nodes),
			strconv.FormatInt(j.CPUs(), 10),
			strconv.FormatInt(j.GPUs().Count, 10),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ExportNodes renders nodes to the export format.
func ExportNodes(nodes []model.Node, format ExportFormat) (string, error) {
	if format == ExportJSON {
		return marshalJSON(nodes)
	}
	var b strings.Builder
	b.WriteString("name,partition,state,cpus_alloc,cpus_total,mem_used_mb,mem_total_mb,gpus_used,gpus_total,reason\n")
	for i := range nodes {
		n := &nodes[i]
		gpus := n.GPUs()
		fields := []string{
			EscapeCSV(n.Name()),
			EscapeCSV(n.PartitionName()),
			n.PrimaryState(),
			strconv.FormatInt(n.CPUs.Allocated, 10),
			strconv.FormatInt(n.CPUs.Total, 10),
			strconv.FormatInt(n.MemoryTotalMB()-n.MemoryFreeMB(), 10),
			strconv.FormatInt(n.MemoryTotalMB(), 10),
			strconv.FormatInt(gpus.Used, 10),
			strconv.FormatInt(gpus.Total, 10),
			EscapeCSV(n.Reason.Description),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ExportPartitions renders the aggregated partition stats.
func ExportPartitions(partitions []model.PartitionStats, format ExportFormat) (string, error) {
	if format == ExportJSON {
		return marshalJSON(partitions)
	}
	var b strings.Builder
	b.WriteString("partition,nodes,cpus_alloc,cpus_total,gpus_used,gpus_total,down,draining\n")
	for _, p := range partitions {
		fields := []string{
			EscapeCSV(p.Name),
			strconv.Itoa(p.NodeCount),
			strconv.FormatInt(p.CPUsAlloc, 10),
			strconv.FormatInt(p.CPUsTotal, 10),
			strconv.FormatInt(p.GPUsUsed, 10),
			strconv.FormatInt(p.GPUsTotal, 10),
			strconv.Itoa(p.Down),
			strconv.Itoa(p.Draining),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func marshalJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeExportFile writes the content to the working directory and
// reports a feedback message for the footer.
func writeExportFile(filename, content string, count int, what string) (string, bool) {
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Export failed: %v", err), false
	}
	return fmt.Sprintf("Exported %d %s to %s", count, what, filename), true
}
