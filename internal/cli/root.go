// Package cli defines the cmon command tree. The bare command starts
// the interactive dashboard; subcommands print one-shot snapshots for
// scripting and quick checks, optionally repeating with --watch.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/hochej/cmon/internal/app"
	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/slurm"
)

var (
	cfgFile string
	watch   int
)

var rootCmd = &cobra.Command{
	Use:   "cmon",
	Short: "Slurm cluster monitor",
	Long: `cmon is a terminal dashboard for Slurm clusters: jobs, nodes,
partitions, fairshare, and scheduler health, refreshed live.

Run without arguments for the interactive dashboard. Subcommands print
a single snapshot and exit:

  cmon status          cluster summary
  cmon jobs -u alice   job list
  cmon nodes --issues  nodes needing attention
  cmon partitions      per-partition utilization`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), app.Options{ConfigPath: cfgFile})
	},
}

// Execute runs the command tree with the given base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: /etc/cmon/config.toml then XDG user config)")
}

// loadConfig resolves config the same way the dashboard does: explicit
// file is fatal when broken, discovered files degrade to warnings.
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		cfg, warnings, err := config.LoadFile(cfgFile)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return cfg, err
	}
	cfg, warnings := config.Load()
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return cfg, nil
}

func newClient(ctx context.Context) (*slurm.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	client := slurm.NewClient(cfg.SlurmCommand)
	if err := client.Probe(ctx); err != nil {
		return nil, cfg, err
	}
	return client, cfg, nil
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// runWatched runs display once, then repeats every watch seconds when
// --watch is set, clearing the screen between rounds.
func runWatched(ctx context.Context, display func(context.Context) error) error {
	if err := display(ctx); err != nil {
		return err
	}
	if watch <= 0 {
		return nil
	}
	ticker := time.NewTicker(time.Duration(watch) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Print("\033[2J\033[H")
			if err := display(ctx); err != nil {
				return err
			}
		}
	}
}
