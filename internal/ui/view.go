package ui

// View identifies the main dashboard screen.
type View int

const (
	ViewJobs View = iota
	ViewNodes
	ViewPartitions
	ViewPersonal
	ViewProblems
)

// allViews in tab order.
var allViews = []View{ViewJobs, ViewNodes, ViewPartitions, ViewPersonal, ViewProblems}

// Next cycles Jobs -> Nodes -> Partitions -> Me -> Problems -> Jobs.
func (v View) Next() View {
	switch v {
	case ViewJobs:
		return ViewNodes
	case ViewNodes:
		return ViewPartitions
	case ViewPartitions:
		return ViewPersonal
	case ViewPersonal:
		return ViewProblems
	default:
		return ViewJobs
	}
}

func (v View) Label() string {
	switch v {
	case ViewJobs:
		return "Jobs"
	case ViewNodes:
		return "Nodes"
	case ViewPartitions:
		return "Partitions"
	case ViewPersonal:
		return "Me"
	case ViewProblems:
		return "Problems"
	default:
		return "?"
	}
}

// ConfigName returns the spelling used by config default_view and the
// prefs file. Inverse of ViewFromName.
func (v View) ConfigName() string {
	switch v {
	case ViewNodes:
		return "nodes"
	case ViewPartitions:
		return "partitions"
	case ViewPersonal:
		return "personal"
	case ViewProblems:
		return "problems"
	default:
		return "jobs"
	}
}

// ViewFromName maps a config default_view value to a View.
func ViewFromName(name string) View {
	switch name {
	case "nodes":
		return ViewNodes
	case "partitions":
		return ViewPartitions
	case "personal", "me":
		return ViewPersonal
	case "problems":
		return ViewProblems
	default:
		return ViewJobs
	}
}

// personalPanel selects the focused pane inside the Me view.
type personalPanel int

const (
	panelRunning personalPanel = iota
	panelPending
	panelFairshare
)

func (p personalPanel) next() personalPanel {
	switch p {
	case panelRunning:
		return panelPending
	case panelPending:
		return panelFairshare
	default:
		return panelRunning
	}
}

// problemsPanel selects the focused pane inside the Problems view.
type problemsPanel int

const (
	panelDown problemsPanel = iota
	panelDraining
)

func (p problemsPanel) next() problemsPanel {
	if p == panelDown {
		return panelDraining
	}
	return panelDown
}
