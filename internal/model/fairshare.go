package model

import "strings"

// FairshareEntry is one sshare association row. Rows arrive flat; the
// parent field links them into the account hierarchy.
type FairshareEntry struct {
	ID               int64          `json:"id"`
	Cluster          string         `json:"cluster"`
	Name             string         `json:"name"`
	Parent           string         `json:"parent"`
	Partition        string         `json:"partition"`
	SharesNormalized FloatValue     `json:"shares_normalized"`
	Shares           FloatValue     `json:"shares"`
	Tres             FairshareTres  `json:"tres"`
	Usage            int64          `json:"usage"`
	Fairshare        FairshareScore `json:"fairshare"`
	EffectiveUsage   FloatValue     `json:"effective_usage"`
	UsageNormalized  FloatValue     `json:"usage_normalized"`
}

type FairshareTres struct {
	RunSeconds []TresRunSeconds `json:"run_seconds"`
}

type TresRunSeconds struct {
	Name  string    `json:"name"`
	Value TimeValue `json:"value"`
}

type FairshareScore struct {
	Factor FloatValue `json:"factor"`
	Level  FloatValue `json:"level"`
}

// IsUser reports whether the row is a user association rather than an
// account: users hang off a non-root parent.
func (e *FairshareEntry) IsUser() bool {
	return e.Parent != "" && e.Parent != "root"
}

// SharesFraction is the normalized share in [0, 1], 0 when unreported.
func (e *FairshareEntry) SharesFraction() float64 {
	v, _ := e.SharesNormalized.Value()
	return v
}

// Factor is the fairshare factor in [0, 1], higher is better.
func (e *FairshareEntry) Factor() float64 {
	v, _ := e.Fairshare.Factor.Value()
	return v
}

// CPUHours converts the "cpu" TRES run-seconds accumulator to hours.
func (e *FairshareEntry) CPUHours() float64 {
	for _, item := range e.Tres.RunSeconds {
		if item.Name == "cpu" {
			if v, ok := item.Value.Value(); ok {
				return float64(v) / 3600
			}
		}
	}
	return 0
}

// GPUHours sums every gres/gpu accumulator (typed and untyped) in hours.
func (e *FairshareEntry) GPUHours() float64 {
	var total float64
	for _, item := range e.Tres.RunSeconds {
		if !strings.HasPrefix(item.Name, "gres/gpu") {
			continue
		}
		if v, ok := item.Value.Value(); ok {
			total += float64(v) / 3600
		}
	}
	return total
}

// FairshareRow is one line of the flattened hierarchy, carrying the
// depth so the view can indent it.
type FairshareRow struct {
	Name          string
	Depth         int
	IsUser        bool
	IsCurrentUser bool
	SharesPercent float64
	Factor        float64
	CPUHours      float64
	GPUHours      float64
	HasChildren   bool
}

// DisplayName indents by depth and marks branch rows with "+".
func (r FairshareRow) DisplayName() string {
	marker := "-"
	if r.HasChildren {
		marker = "+"
	}
	return strings.Repeat("  ", r.Depth) + marker + " " + r.Name
}

// FlattenFairshare links the flat sshare rows into the account tree and
// returns it flattened depth-first, roots (parent "root" or empty) in
// input order and each account's children directly under it.
func FlattenFairshare(entries []FairshareEntry, currentUser string) []FairshareRow {
	var rows []FairshareRow
	for i := range entries {
		if entries[i].Parent == "root" || entries[i].Parent == "" {
			appendSubtree(&rows, entries, &entries[i], 0, currentUser)
		}
	}
	return rows
}

func appendSubtree(rows *[]FairshareRow, all []FairshareEntry, entry *FairshareEntry, depth int, currentUser string) {
	row := FairshareRow{
		Name:          entry.Name,
		Depth:         depth,
		IsUser:        entry.IsUser(),
		IsCurrentUser: entry.Name == currentUser,
		SharesPercent: entry.SharesFraction() * 100,
		Factor:        entry.Factor(),
		CPUHours:      entry.CPUHours(),
		GPUHours:      entry.GPUHours(),
	}
	at := len(*rows)
	*rows = append(*rows, row)
	for i := range all {
		if all[i].Parent == entry.Name {
			(*rows)[at].HasChildren = true
			appendSubtree(rows, all, &all[i], depth+1, currentUser)
		}
	}
}
