// Package ui implements the interactive terminal dashboard. The root
// Model consumes data snapshots from the fetch runtime over a bounded
// channel and renders the five cluster views; all blocking work stays
// on the runtime side so keystrokes are never queued behind data.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochej/cmon/internal/config"
)

// Options wires the UI to the rest of the application.
type Options struct {
	Context  context.Context
	Config   config.Config
	Warnings []string
	Username string

	// Events is the bounded data channel fed by the fetch runtime.
	Events <-chan tea.Msg

	// Control steers the runtime: filter changes, manual refresh,
	// job cancellation.
	Control Control
}

// Session captures the sticky state the dashboard was left in, so the
// next run can pick up where the user stopped.
type Session struct {
	Theme       string
	LastView    string
	ShowAllJobs bool
}

// Run starts the dashboard and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) (Session, error) {
	program := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(opts.Context),
	)
	final, err := program.Run()
	if err != nil {
		return Session{}, fmt.Errorf("ui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Session(), nil
	}
	return Session{}, nil
}
