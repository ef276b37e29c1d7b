package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMatches reports whether the key message triggers the binding.
func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Tab    key.Binding

	// View switching
	ViewJobs       key.Binding
	ViewNodes      key.Binding
	ViewPartitions key.Binding
	ViewPersonal   key.Binding
	ViewProblems   key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Select         key.Binding
	Cancel         key.Binding
	Refresh        key.Binding
	ToggleAll      key.Binding
	Filter         key.Binding
	QuickSearch    key.Binding
	Sort           key.Binding
	Yank           key.Binding
	CycleAccount   key.Binding
	GroupByAccount key.Binding
	ToggleGrid     key.Binding
	ExportJSON     key.Binding
	ExportCSV      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "Help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / clear filter"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view / panel"),
		),

		// View switching
		ViewJobs: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Jobs"),
		),
		ViewNodes: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Nodes"),
		),
		ViewPartitions: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Partitions"),
		),
		ViewPersonal: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Me"),
		),
		ViewProblems: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Problems"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		// Actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Details / confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cancel job"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "All jobs / mine"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter"),
		),
		QuickSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Quick search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy job ID"),
		),
		CycleAccount: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Cycle account"),
		),
		GroupByAccount: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "Group by account"),
		),
		ToggleGrid: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "List / grid"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export JSON"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Export CSV"),
		),
	}
}
