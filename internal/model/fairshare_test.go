package model

import (
	"encoding/json"
	"testing"
)

func entry(name, parent string, shares float64, tres ...TresRunSeconds) FairshareEntry {
	return FairshareEntry{
		Name:             name,
		Parent:           parent,
		SharesNormalized: FloatValue{Set: true, Number: shares},
		Tres:             FairshareTres{RunSeconds: tres},
	}
}

func TestFlattenFairshare(t *testing.T) {
	entries := []FairshareEntry{
		entry("ml-lab", "root", 0.5),
		entry("ada", "ml-lab", 0.25),
		entry("grace", "ml-lab", 0.25),
		entry("physics", "", 0.5),
		entry("lise", "physics", 0.5),
	}

	rows := FlattenFairshare(entries, "grace")
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}

	wantOrder := []string{"ml-lab", "ada", "grace", "physics", "lise"}
	wantDepth := []int{0, 1, 1, 0, 1}
	for i, row := range rows {
		if row.Name != wantOrder[i] || row.Depth != wantDepth[i] {
			t.Errorf("row %d = %s@%d, want %s@%d", i, row.Name, row.Depth, wantOrder[i], wantDepth[i])
		}
	}

	if !rows[0].HasChildren || rows[1].HasChildren {
		t.Error("ml-lab must have children, ada must not")
	}
	if !rows[2].IsCurrentUser || rows[1].IsCurrentUser {
		t.Error("current-user flag must land on grace only")
	}
	if rows[0].IsUser || !rows[1].IsUser {
		t.Error("accounts hang off root, users hang off accounts")
	}
}

func TestFairshareHours(t *testing.T) {
	e := entry("ada", "ml-lab", 0.25,
		TresRunSeconds{Name: "cpu", Value: TimeValueOf(7200)},
		TresRunSeconds{Name: "gres/gpu", Value: TimeValueOf(3600)},
		TresRunSeconds{Name: "gres/gpu:l40s", Value: TimeValueOf(1800)},
		TresRunSeconds{Name: "mem", Value: TimeValueOf(999999)},
	)

	if got := e.CPUHours(); got != 2 {
		t.Errorf("CPUHours() = %v, want 2", got)
	}
	// Typed and untyped GPU accumulators both count.
	if got := e.GPUHours(); got != 1.5 {
		t.Errorf("GPUHours() = %v, want 1.5", got)
	}

	empty := entry("none", "root", 0)
	if empty.CPUHours() != 0 || empty.GPUHours() != 0 {
		t.Error("missing accumulators must read as zero hours")
	}
}

func TestFairshareRowDisplayName(t *testing.T) {
	branch := FairshareRow{Name: "ml-lab", Depth: 0, HasChildren: true}
	if got := branch.DisplayName(); got != "+ ml-lab" {
		t.Errorf("branch DisplayName() = %q", got)
	}
	leaf := FairshareRow{Name: "ada", Depth: 2}
	if got := leaf.DisplayName(); got != "    - ada" {
		t.Errorf("leaf DisplayName() = %q", got)
	}
}

func TestFairshareEntryDecoding(t *testing.T) {
	data := `{
		"id": 7,
		"name": "ada",
		"parent": "ml-lab",
		"shares_normalized": {"set": true, "infinite": false, "number": 0.25},
		"fairshare": {"factor": {"set": true, "infinite": false, "number": 0.83}},
		"tres": {"run_seconds": [{"name": "cpu", "value": {"set": true, "infinite": false, "number": 3600}}]}
	}`
	var e FairshareEntry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !e.IsUser() {
		t.Error("entry with account parent must be a user")
	}
	if got := e.Factor(); got != 0.83 {
		t.Errorf("Factor() = %v, want 0.83", got)
	}
	if got := e.CPUHours(); got != 1 {
		t.Errorf("CPUHours() = %v, want 1", got)
	}
}
