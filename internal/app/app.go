package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/prefs"
	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

// Options configure the cmon TUI.
type Options struct {
	ConfigPath string // explicit --config path; empty uses discovery
}

// Run boots the dashboard until the context is cancelled or the user
// quits. The only fatal error is an unreachable Slurm installation at
// startup; everything after that degrades to in-UI indicators.
func Run(ctx context.Context, opts Options) error {
	var (
		cfg      config.Config
		warnings []string
	)
	if opts.ConfigPath != "" {
		var err error
		cfg, warnings, err = config.LoadFile(opts.ConfigPath)
		if err != nil {
			return err
		}
	} else {
		cfg, warnings = config.Load()
	}

	// Session prefs override config defaults so the dashboard reopens
	// where the user left it.
	prefsPath := prefs.DefaultPath()
	if p := prefs.Load(prefsPath); p != (prefs.Prefs{}) {
		if p.Theme != "" {
			cfg.Display.Theme = p.Theme
		}
		if p.LastView != "" {
			cfg.Display.DefaultView = p.LastView
		}
		cfg.Display.ShowAllJobs = p.ShowAllJobs
	}

	// stdout belongs to the TUI; log lines go to a file when debugging
	// and nowhere otherwise.
	if os.Getenv("CMON_DEBUG") != "" {
		f, err := tea.LogToFile("cmon-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	client := slurm.NewClient(cfg.SlurmCommand)
	if err := client.Probe(ctx); err != nil {
		return err
	}

	username := currentUsername()

	filter := slurm.JobFilter{}
	if !cfg.Display.ShowAllJobs && username != "" {
		filter.Users = []string{username}
	}

	runtime := NewRuntime(client, IntervalsFromConfig(cfg.Refresh), filter)
	runtime.Start(ctx)

	session, err := ui.Run(ui.Options{
		Context:  ctx,
		Config:   cfg,
		Warnings: warnings,
		Username: username,
		Events:   runtime.Events(),
		Control:  runtime,
	})
	if err != nil {
		return err
	}

	// Best effort; losing session prefs is not worth a nonzero exit.
	if err := prefs.Save(prefsPath, prefs.Prefs{
		Theme:       session.Theme,
		LastView:    session.LastView,
		ShowAllJobs: session.ShowAllJobs,
	}); err != nil {
		log.Printf("save prefs: %v", err)
	}
	return nil
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
