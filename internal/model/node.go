package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node is one sinfo record. sinfo groups by (node, partition), so the
// same physical node can appear once per partition it serves.
type Node struct {
	Names     nodeNames     `json:"nodes"`
	NodeState nodeState     `json:"node"`
	Partition partitionName `json:"partition"`
	CPUs      CPUInfo       `json:"cpus"`
	Memory    MemoryInfo    `json:"memory"`
	Gres      GresInfo      `json:"gres"`
	Reason    Reason        `json:"reason"`
}

type nodeNames struct {
	Nodes []string `json:"nodes"`
}

type nodeState struct {
	State []string `json:"state"`
}

type partitionName struct {
	Name string `json:"name"`
}

// CPUInfo is the per-node CPU accounting from sinfo.
type CPUInfo struct {
	Allocated int64 `json:"allocated"`
	Idle      int64 `json:"idle"`
	Total     int64 `json:"total"`
}

// MemoryInfo carries memory in MB. Free arrives as a TimeValue because
// Slurm reports it with the set/infinite wrapper.
type MemoryInfo struct {
	Minimum   int64          `json:"minimum"`
	Allocated int64          `json:"allocated"`
	Free      MemoryFreeInfo `json:"free"`
}

type MemoryFreeInfo struct {
	Minimum TimeValue `json:"minimum"`
}

// GresInfo holds the raw generic-resource strings from sinfo.
type GresInfo struct {
	Total string `json:"total"`
	Used  string `json:"used"`
}

// Reason tolerates both encodings sinfo emits: a plain string in older
// releases, {"description": ...} in newer ones.
type Reason struct {
	Description string
}

func (r *Reason) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.Description = ""
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("reason object: %w", err)
		}
		r.Description = obj.Description
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reason string: %w", err)
	}
	r.Description = s
	return nil
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Description)
}

// Name is the first node name of the record, "" for malformed records.
func (n *Node) Name() string {
	if len(n.Names.Nodes) == 0 {
		return ""
	}
	return n.Names.Nodes[0]
}

// DisplayName strips a configured site prefix ("gpu-" turns gpu-a001
// into a001). An empty prefix or non-matching name passes through.
func (n *Node) DisplayName(prefix string) string {
	name := n.Name()
	if prefix != "" {
		if stripped, ok := strings.CutPrefix(name, prefix); ok && stripped != "" {
			return stripped
		}
	}
	return name
}

// PartitionName preserves Slurm's casing; records without a partition
// read as "unknown".
func (n *Node) PartitionName() string {
	if n.Partition.Name == "" {
		return "unknown"
	}
	return n.Partition.Name
}

// PrimaryState resolves the compound token set via the node table.
func (n *Node) PrimaryState() string {
	if len(n.NodeState.State) == 0 {
		return UnknownState
	}
	if s := PrimaryState(n.NodeState.State, NodeStatePriority); s != UnknownState {
		return s
	}
	// An unrecognized but non-empty token set shows its first raw token.
	return n.NodeState.State[0]
}

func (n *Node) IsDown() bool     { return HasState(n.NodeState.State, "DOWN") }
func (n *Node) IsDrained() bool  { return HasState(n.NodeState.State, "DRAINED") }
func (n *Node) IsDraining() bool { return HasState(n.NodeState.State, "DRAINING", "DRAIN", "DRNG") }
func (n *Node) IsFail() bool     { return HasState(n.NodeState.State, "FAIL", "FAILING", "FAILG") }
func (n *Node) IsIdle() bool     { return HasState(n.NodeState.State, "IDLE") }
func (n *Node) IsMixed() bool    { return HasState(n.NodeState.State, "MIXED", "MIX") }
func (n *Node) IsAllocated() bool {
	return HasState(n.NodeState.State, "ALLOCATED", "ALLOC")
}
func (n *Node) IsMaint() bool { return HasState(n.NodeState.State, "MAINT") }

// HasProblem reports whether the node belongs in the problems view.
func (n *Node) HasProblem() bool {
	return n.IsDown() || n.IsFail() || n.IsDrained() || n.IsDraining()
}

// MemoryTotalMB and MemoryFreeMB expose sinfo's memory figures (MB).
func (n *Node) MemoryTotalMB() int64 { return n.Memory.Minimum }

func (n *Node) MemoryFreeMB() int64 {
	v, _ := n.Memory.Free.Minimum.Value()
	return v
}

// MemoryUtilization is the used fraction as a percentage, 0 when total
// is unreported.
func (n *Node) MemoryUtilization() float64 {
	total := n.MemoryTotalMB()
	if total <= 0 {
		return 0
	}
	used := total - n.MemoryFreeMB()
	if used < 0 {
		used = 0
	}
	return float64(used) / float64(total) * 100
}

// GPUInfo is the node-side GPU summary parsed from GRES strings.
type GPUInfo struct {
	Total int64
	Used  int64
	Type  string
}

// Free is the unallocated GPU count, clamped at zero.
func (g GPUInfo) Free() int64 {
	free := g.Total - g.Used
	if free < 0 {
		return 0
	}
	return free
}

// Display renders "3/4 L40S", "0/4", or "-" for GPU-less nodes.
func (g GPUInfo) Display() string {
	if g.Total == 0 {
		return "-"
	}
	if g.Type == "" {
		return fmt.Sprintf("%d/%d", g.Used, g.Total)
	}
	return fmt.Sprintf("%d/%d %s", g.Used, g.Total, strings.ToUpper(g.Type))
}

// GPUs parses totals and usage out of the GRES strings, which look like
// "gpu:l40s:4(S:0-1)" for total and "gpu:l40s:3(IDX:0-2)" for used.
func (n *Node) GPUs() GPUInfo {
	var info GPUInfo
	info.Type, info.Total = parseGres(n.Gres.Total)
	_, info.Used = parseGres(n.Gres.Used)
	return info
}

func parseGres(gres string) (gpuType string, count int64) {
	_, rest, ok := strings.Cut(gres, "gpu:")
	if !ok {
		return "", 0
	}
	parts := strings.Split(rest, ":")
	if len(parts) < 2 {
		// "gpu:4" with no type segment.
		raw, _, _ := strings.Cut(parts[0], "(")
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", 0
		}
		return "", n
	}
	raw, _, _ := strings.Cut(parts[1], "(")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return parts[0], 0
	}
	return parts[0], n
}

// PartitionStats is a per-partition rollup derived from node records.
type PartitionStats struct {
	Name       string
	NodeCount  int
	CPUsTotal  int64
	CPUsAlloc  int64
	GPUsTotal  int64
	GPUsUsed   int64
	MemTotalMB int64
	MemFreeMB  int64
	Down       int
	Draining   int
}

// CPUUtilization is the allocated CPU fraction as a percentage.
func (p PartitionStats) CPUUtilization() float64 {
	if p.CPUsTotal == 0 {
		return 0
	}
	return float64(p.CPUsAlloc) / float64(p.CPUsTotal) * 100
}

// GPUUtilization is the used GPU fraction as a percentage.
func (p PartitionStats) GPUUtilization() float64 {
	if p.GPUsTotal == 0 {
		return 0
	}
	return float64(p.GPUsUsed) / float64(p.GPUsTotal) * 100
}

// ComputePartitionStats rolls nodes up into per-partition aggregates,
// ordered by the given preference list first and alphabetically after.
func ComputePartitionStats(nodes []Node, order []string) []PartitionStats {
	byName := make(map[string]*PartitionStats)
	var names []string
	for i := range nodes {
		node := &nodes[i]
		name := node.PartitionName()
		stats, ok := byName[name]
		if !ok {
			stats = &PartitionStats{Name: name}
			byName[name] = stats
			names = append(names, name)
		}
		stats.NodeCount++
		stats.CPUsTotal += node.CPUs.Total
		stats.CPUsAlloc += node.CPUs.Allocated
		gpu := node.GPUs()
		stats.GPUsTotal += gpu.Total
		stats.GPUsUsed += gpu.Used
		stats.MemTotalMB += node.MemoryTotalMB()
		stats.MemFreeMB += node.MemoryFreeMB()
		if node.IsDown() || node.IsFail() {
			stats.Down++
		}
		if node.IsDrained() || node.IsDraining() {
			stats.Draining++
		}
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iOrdered := rank[names[i]]
		rj, jOrdered := rank[names[j]]
		switch {
		case iOrdered && jOrdered:
			return ri < rj
		case iOrdered != jOrdered:
			return iOrdered
		default:
			return names[i] < names[j]
		}
	})

	out := make([]PartitionStats, 0, len(names))
	for _, name := range names {
		out = append(out, *byName[name])
	}
	return out
}
