// Package prefs persists session preferences between runs: the view
// and toggles the user left the dashboard in. Unlike config, which is
// operator-managed, prefs are written by cmon itself on exit and are
// best-effort in both directions.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the sticky session state.
type Prefs struct {
	Theme       string `toml:"theme"`
	LastView    string `toml:"last_view"`
	ShowAllJobs bool   `toml:"show_all_jobs"`
}

// DefaultPath returns the preferences file location, honoring
// XDG_CONFIG_HOME. Empty when no home directory can be resolved.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cmon", "prefs.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cmon", "prefs.toml")
}

// Load reads preferences from path. A missing or broken file returns
// zero prefs: session state is never worth failing startup over.
func Load(path string) Prefs {
	var p Prefs
	if strings.TrimSpace(path) == "" {
		return p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("prefs path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
