package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// SystemConfigPath is the site-wide config consulted first.
const SystemConfigPath = "/etc/cmon/config.toml"

const minRefreshSeconds = 1

// Config is the merged cmon configuration.
type Config struct {
	System   SystemConfig   `toml:"system"`
	Refresh  RefreshConfig  `toml:"refresh"`
	Display  DisplayConfig  `toml:"display"`
	Behavior BehaviorConfig `toml:"behavior"`
}

// SystemConfig locates the Slurm binaries.
type SystemConfig struct {
	// Directory holding squeue, sinfo, etc. Empty means $PATH lookup.
	SlurmBinPath string `toml:"slurm_bin_path"`
}

// RefreshConfig sets the per-kind polling intervals, all in seconds.
type RefreshConfig struct {
	JobsInterval      int  `toml:"jobs_interval"`
	NodesInterval     int  `toml:"nodes_interval"`
	FairshareInterval int  `toml:"fairshare_interval"`
	SchedulerInterval int  `toml:"scheduler_interval"`
	IdleSlowdown      bool `toml:"idle_slowdown"`
	IdleThreshold     int  `toml:"idle_threshold"`
	MaxBackoff        int  `toml:"max_backoff"`
}

// DisplayConfig sets view and rendering preferences.
type DisplayConfig struct {
	DefaultView      string   `toml:"default_view"`
	ShowAllJobs      bool     `toml:"show_all_jobs"`
	GroupByAccount   bool     `toml:"show_grouped_by_account"`
	Theme            string   `toml:"theme"`
	PartitionOrder   []string `toml:"partition_order"`
	NodePrefixStrip  string   `toml:"node_prefix_strip"`
	JobNameMaxLength int      `toml:"job_name_max_length"`
}

// BehaviorConfig sets interaction preferences.
type BehaviorConfig struct {
	ConfirmCancel   bool `toml:"confirm_cancel"`
	CopyToClipboard bool `toml:"copy_to_clipboard"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Refresh: RefreshConfig{
			JobsInterval:      5,
			NodesInterval:     10,
			FairshareInterval: 60,
			SchedulerInterval: 30,
			IdleSlowdown:      true,
			IdleThreshold:     30,
			MaxBackoff:        300,
		},
		Display: DisplayConfig{
			DefaultView:      "jobs",
			Theme:            "dark",
			JobNameMaxLength: 35,
		},
		Behavior: BehaviorConfig{
			ConfirmCancel:   true,
			CopyToClipboard: true,
		},
	}
}

// UserConfigPath resolves the per-user config file, honoring
// XDG_CONFIG_HOME. Empty when no home directory can be determined.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cmon", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cmon", "config.toml")
}

// Load merges the site file, the user file, and CMON_* environment
// overrides onto the defaults, then validates. The returned warnings
// describe everything that was ignored or corrected.
func Load() (Config, []string) {
	cfg := Default()
	var warnings []string

	mergeFile(&cfg, SystemConfigPath, &warnings)
	if user := UserConfigPath(); user != "" {
		mergeFile(&cfg, user, &warnings)
	}
	applyEnv(&cfg, &warnings)
	cfg.validate(&warnings)

	return cfg, warnings
}

// LoadFile parses a single explicit config file on top of the defaults,
// for the --config flag. Unlike Load, a missing file is an error here:
// the user asked for that file specifically.
func LoadFile(path string) (Config, []string, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	var warnings []string
	applyEnv(&cfg, &warnings)
	cfg.validate(&warnings)
	return cfg, warnings, nil
}

func mergeFile(cfg *Config, path string, warnings *[]string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		*warnings = append(*warnings, fmt.Sprintf("could not read config %s: %v", path, err))
		return
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		*warnings = append(*warnings, fmt.Sprintf("config parse error in %s: %v", path, err))
	}
}

func applyEnv(cfg *Config, warnings *[]string) {
	if val := os.Getenv("CMON_SLURM_PATH"); val != "" {
		if info, err := os.Stat(val); err == nil && info.IsDir() {
			cfg.System.SlurmBinPath = val
		} else {
			*warnings = append(*warnings, fmt.Sprintf("CMON_SLURM_PATH %q is not a directory, ignored", val))
		}
	}

	envInterval(warnings, "CMON_REFRESH_JOBS", &cfg.Refresh.JobsInterval)
	envInterval(warnings, "CMON_REFRESH_NODES", &cfg.Refresh.NodesInterval)
	envInterval(warnings, "CMON_REFRESH_FAIRSHARE", &cfg.Refresh.FairshareInterval)
	envInterval(warnings, "CMON_REFRESH_SCHEDULER", &cfg.Refresh.SchedulerInterval)

	if val := os.Getenv("CMON_DEFAULT_VIEW"); val != "" {
		cfg.Display.DefaultView = val
	}
	if val := os.Getenv("CMON_THEME"); val != "" {
		cfg.Display.Theme = val
	}
	if _, set := os.LookupEnv("CMON_NO_CLIPBOARD"); set {
		cfg.Behavior.CopyToClipboard = false
	}
}

func envInterval(warnings *[]string, name string, target *int) {
	val, set := os.LookupEnv(name)
	if !set {
		return
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs < minRefreshSeconds {
		*warnings = append(*warnings, fmt.Sprintf("%s=%q: expected an integer >= %d seconds, ignored", name, val, minRefreshSeconds))
		return
	}
	*target = secs
}

// validate corrects out-of-range values back to their defaults, one
// warning per correction. Nothing here is fatal.
func (c *Config) validate(warnings *[]string) {
	defaults := Default()
	fix := func(field string, value *int, def int) {
		if *value < minRefreshSeconds {
			*warnings = append(*warnings, fmt.Sprintf(
				"refresh.%s must be at least %d second(s), got %d - using default (%d)",
				field, minRefreshSeconds, *value, def))
			*value = def
		}
	}
	fix("jobs_interval", &c.Refresh.JobsInterval, defaults.Refresh.JobsInterval)
	fix("nodes_interval", &c.Refresh.NodesInterval, defaults.Refresh.NodesInterval)
	fix("fairshare_interval", &c.Refresh.FairshareInterval, defaults.Refresh.FairshareInterval)
	fix("scheduler_interval", &c.Refresh.SchedulerInterval, defaults.Refresh.SchedulerInterval)
	fix("max_backoff", &c.Refresh.MaxBackoff, defaults.Refresh.MaxBackoff)
	if c.Refresh.IdleSlowdown {
		fix("idle_threshold", &c.Refresh.IdleThreshold, defaults.Refresh.IdleThreshold)
	}
	if c.Display.JobNameMaxLength < 1 {
		c.Display.JobNameMaxLength = defaults.Display.JobNameMaxLength
	}
}

// SlurmCommand resolves a Slurm binary name against the configured
// binary directory, or returns it bare for $PATH lookup.
func (c *Config) SlurmCommand(name string) string {
	if strings.TrimSpace(c.System.SlurmBinPath) == "" {
		return name
	}
	return filepath.Join(c.System.SlurmBinPath, name)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
