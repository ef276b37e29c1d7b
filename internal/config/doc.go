// Package config handles loading and merging cmon configuration files.
//
// # Configuration Discovery
//
// Load merges four layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. Site config: /etc/cmon/config.toml
//  3. User config: $XDG_CONFIG_HOME/cmon/config.toml, falling back to
//     ~/.config/cmon/config.toml
//  4. Environment overrides (CMON_REFRESH_JOBS, CMON_REFRESH_NODES,
//     CMON_REFRESH_FAIRSHARE, CMON_REFRESH_SCHEDULER, CMON_SLURM_PATH,
//     CMON_DEFAULT_VIEW, CMON_THEME, CMON_NO_CLIPBOARD)
//
// LoadFile bypasses discovery for an explicit --config path; there a
// missing file is an error because the user asked for it by name.
//
// # TOML Format
//
// Example config.toml:
//
//	[system]
//	slurm_bin_path = "/opt/slurm/bin"
//
//	[refresh]
//	jobs_interval = 5
//	nodes_interval = 10
//	fairshare_interval = 60
//	scheduler_interval = 30
//	idle_slowdown = true
//	idle_threshold = 30
//	max_backoff = 300
//
//	[display]
//	default_view = "jobs"
//	theme = "dark"
//	partition_order = ["gpu", "cpu", "fat"]
//	node_prefix_strip = "demu4x"
//
//	[behavior]
//	confirm_cancel = true
//	copy_to_clipboard = true
//
// All fields are optional. Intervals are seconds.
//
// # Error Handling
//
// A monitoring tool must come up even with a broken config, so Load
// never fails: missing files are silently skipped, and parse errors,
// unreadable files, bad env values, and out-of-range intervals each
// produce a warning string for the status bar while the affected value
// falls back to its default.
package config
