package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZero(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if p != (Prefs{}) {
		t.Fatalf("missing file prefs = %+v, want zero", p)
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "prefs.toml")
	content := "theme = \"light\"\nlast_view = \"nodes\"\nshow_all_jobs = true\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(file)
	if p.Theme != "light" {
		t.Errorf("Theme = %q, want light", p.Theme)
	}
	if p.LastView != "nodes" {
		t.Errorf("LastView = %q, want nodes", p.LastView)
	}
	if !p.ShowAllJobs {
		t.Error("ShowAllJobs = false, want true")
	}
}

func TestSaveRoundTripsAndCreatesDirs(t *testing.T) {
	file := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	want := Prefs{Theme: "dark", LastView: "problems", ShowAllJobs: true}
	if err := Save(file, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(file); got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadInvalidTOMLReturnsZero(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(file, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if p := Load(file); p != (Prefs{}) {
		t.Fatalf("broken file prefs = %+v, want zero", p)
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", "cmon", "prefs.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
