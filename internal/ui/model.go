package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/model"
	"github.com/hochej/cmon/internal/slurm"
)

// Control is the handle the UI uses to steer the background fetchers.
// *app.Runtime satisfies it.
type Control interface {
	SetJobFilter(filter slurm.JobFilter)
	KickJobs()
	Cancel(ctx context.Context, jobID int64)
}

// tickMsg drives periodic redraws for staleness and feedback expiry.
type tickMsg time.Time

// Model is the root bubbletea model. All cluster data lives here as
// immutable snapshots replaced wholesale by data events; everything
// else is presentation state.
type Model struct {
	ctx     context.Context
	cfg     config.Config
	keys    keyMap
	styles  Styles
	control Control
	events  <-chan tea.Msg

	username string
	width    int
	height   int

	view     View
	prevView View

	// Modal stack. Only one modal is open at a time.
	modal         Modal
	filterInput   textinput.Model
	filterType    filterKind
	confirmAction ConfirmAction
	sortSelected  int
	detail        viewport.Model

	// Data snapshots with fetch timestamps for staleness.
	jobs        []model.Job
	jobsAt      time.Time
	nodes       []model.Node
	nodesAt     time.Time
	partitions  []model.PartitionStats
	fairshare   []model.FairshareRow
	fairshareAt time.Time
	schedStats  *model.SchedulerStats

	// Jobs view.
	jobsList       ListState
	sortColumn     JobSortColumn
	sortAscending  bool
	activeFilter   string
	showAllJobs    bool
	groupByAccount bool
	visibleJobs    []int

	// Account context.
	accounts       []string
	focusedAccount string

	// Nodes view.
	nodesList ListState
	gridMode  bool

	// Partitions view.
	partitionsList ListState

	// Personal view.
	personal      personalPanel
	runningList   ListState
	pendingList   ListState
	fairshareList ListState
	runningJobs   []int
	pendingJobs   []int

	// Problems view.
	problems     problemsPanel
	downList     ListState
	drainingList ListState
	downNodes    []int
	drainNodes   []int

	feedback feedbackState
	quitting bool
}

// New builds the root model from the wiring options.
func New(opts Options) Model {
	cfg := opts.Config

	input := textinput.New()
	input.Prompt = "/ "
	input.CharLimit = 256

	m := Model{
		ctx:            opts.Context,
		cfg:            cfg,
		keys:           DefaultKeyMap(),
		styles:         GetTheme(cfg.Display.Theme).Styles(),
		control:        opts.Control,
		events:         opts.Events,
		username:       opts.Username,
		view:           ViewFromName(cfg.Display.DefaultView),
		filterInput:    input,
		sortAscending:  true,
		showAllJobs:    cfg.Display.ShowAllJobs,
		groupByAccount: cfg.Display.GroupByAccount,
		feedback:       newFeedbackState(opts.Warnings),
	}
	m.prevView = m.view
	// viewport.New wires the default scroll keymap and mouse wheel.
	m.detail = viewport.New(0, 0)
	return m
}

// Session reports the state worth persisting between runs.
func (m Model) Session() Session {
	return Session{
		Theme:       m.cfg.Display.Theme,
		LastView:    m.view.ConfigName(),
		ShowAllJobs: m.showAllJobs,
	}
}

// Init starts the event bridge and the redraw tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.receiveEvent(), tick())
}

// receiveEvent pulls exactly one message off the bounded data channel.
// The command is re-issued after each delivery, so the UI consumes at
// most one data event per update cycle and never blocks on the
// channel: input messages always interleave.
func (m Model) receiveEvent() tea.Cmd {
	events := m.events
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		m.detail.Width = msg.Width - 8
		m.detail.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		return m, tick()

	case JobsMsg:
		m.applyJobs(msg)
		m.feedback.persistent[KindJobs] = false
		return m, m.receiveEvent()

	case NodesMsg:
		m.applyNodes(msg)
		m.feedback.persistent[KindNodes] = false
		return m, m.receiveEvent()

	case FairshareMsg:
		m.fairshare = model.FlattenFairshare(msg.Entries, m.username)
		m.fairshareAt = msg.FetchedAt
		m.fairshareList.Clamp(len(m.fairshare))
		m.feedback.persistent[KindFairshare] = false
		return m, m.receiveEvent()

	case SchedStatsMsg:
		stats := msg.Stats
		m.schedStats = &stats
		m.feedback.persistent[KindScheduler] = false
		return m, m.receiveEvent()

	case FetchErrMsg:
		m.feedback.persistent[msg.Kind] = msg.Persistent
		m.feedback.setError(fmt.Sprintf("%s: %v", msg.Kind, msg.Err), time.Now())
		return m, m.receiveEvent()

	case CancelResultMsg:
		if msg.Err != nil {
			m.feedback.clearAction()
			m.feedback.setError(fmt.Sprintf("cancel %d: %v", msg.JobID, msg.Err), time.Now())
		} else {
			m.feedback.setAction(fmt.Sprintf("Cancelled job %d", msg.JobID), true, time.Now())
		}
		return m, m.receiveEvent()
	}

	return m, nil
}

// applyJobs replaces the jobs snapshot, refreshes derived state, and
// clamps every selection that indexes into it.
func (m *Model) applyJobs(msg JobsMsg) {
	m.jobs = msg.Jobs
	m.jobsAt = msg.FetchedAt

	seen := make(map[string]bool)
	m.accounts = m.accounts[:0]
	for i := range m.jobs {
		if acct := m.jobs[i].Account; acct != "" && !seen[acct] {
			seen[acct] = true
			m.accounts = append(m.accounts, acct)
		}
	}
	sort.Strings(m.accounts)
	if m.focusedAccount != "" && !seen[m.focusedAccount] {
		m.focusedAccount = ""
	}

	m.recomputeVisible()
	m.recomputePersonal()
}

func (m *Model) applyNodes(msg NodesMsg) {
	m.nodes = msg.Nodes
	m.nodesAt = msg.FetchedAt
	m.partitions = model.ComputePartitionStats(m.nodes, m.cfg.Display.PartitionOrder)
	m.nodesList.Clamp(len(m.nodes))
	m.partitionsList.Clamp(len(m.partitions))

	m.downNodes = m.downNodes[:0]
	m.drainNodes = m.drainNodes[:0]
	for i := range m.nodes {
		node := &m.nodes[i]
		if node.IsDown() || node.IsFail() {
			m.downNodes = append(m.downNodes, i)
		} else if node.IsDrained() || node.IsDraining() {
			m.drainNodes = append(m.drainNodes, i)
		}
	}
	m.downList.Clamp(len(m.downNodes))
	m.drainingList.Clamp(len(m.drainNodes))
}

// recomputeVisible rebuilds the filtered, sorted jobs slice and clamps
// the selection to it. Called whenever the snapshot, filter, sort, or
// account focus changes.
func (m *Model) recomputeVisible() {
	indices := SortedFilteredJobs(m.jobs, m.activeFilter, m.sortColumn, m.sortAscending)
	if m.focusedAccount != "" {
		kept := indices[:0]
		for _, i := range indices {
			if m.jobs[i].Account == m.focusedAccount {
				kept = append(kept, i)
			}
		}
		indices = kept
	}
	if m.groupByAccount {
		// Stable: jobs keep their sort order within each account.
		sort.SliceStable(indices, func(a, b int) bool {
			return m.jobs[indices[a]].Account < m.jobs[indices[b]].Account
		})
	}
	m.visibleJobs = indices
	m.jobsList.Clamp(len(m.visibleJobs))
}

func (m *Model) recomputePersonal() {
	m.runningJobs = m.runningJobs[:0]
	m.pendingJobs = m.pendingJobs[:0]
	for i := range m.jobs {
		job := &m.jobs[i]
		if job.UserName != m.username {
			continue
		}
		switch {
		case job.IsRunning() || job.IsCompleting():
			m.runningJobs = append(m.runningJobs, i)
		case job.IsPending():
			m.pendingJobs = append(m.pendingJobs, i)
		}
	}
	m.runningList.Clamp(len(m.runningJobs))
	m.pendingList.Clamp(len(m.pendingJobs))
}

func (m *Model) resizeLists() {
	rows := m.contentHeight()
	m.jobsList.VisibleCount = rows
	m.nodesList.VisibleCount = rows
	m.partitionsList.VisibleCount = rows
	half := rows / 2
	if half < 1 {
		half = 1
	}
	m.runningList.VisibleCount = half
	m.pendingList.VisibleCount = half
	m.fairshareList.VisibleCount = half
	m.downList.VisibleCount = half
	m.drainingList.VisibleCount = half
}

// contentHeight is the number of rows available to list bodies: total height minus
// title, tabs, table header, and footer.
func (m *Model) contentHeight() int {
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

// handleKey dispatches a key press. Open modals intercept everything;
// only with no modal active do global bindings apply.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == ModalHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.modal = ModalNone
		}
		return m, nil
	}

	switch m.modal {
	case ModalFilter:
		return m.handleFilterKey(msg)
	case ModalConfirm:
		return m.handleConfirmKey(msg)
	case ModalSort:
		return m.handleSortKey(msg)
	case ModalDetail:
		return m.handleDetailKey(msg)
	}

	return m.handleGlobalKey(msg)
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Discard the draft, keep the previously applied filter.
		m.modal = ModalNone
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.activeFilter = strings.TrimSpace(m.filterInput.Value())
		m.modal = ModalNone
		m.filterInput.Blur()
		m.recomputeVisible()
		return m, nil
	case "ctrl+u":
		m.filterInput.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		action := m.confirmAction
		m.modal = ModalNone
		return m.executeCancel(action.JobID)
	case "n", "N", "esc":
		m.modal = ModalNone
	}
	return m, nil
}

func (m Model) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.modal = ModalNone
	case keyMatches(msg, m.keys.Up):
		if m.sortSelected > 0 {
			m.sortSelected--
		}
	case keyMatches(msg, m.keys.Down):
		if m.sortSelected < len(sortColumns)-1 {
			m.sortSelected++
		}
	case msg.String() == "enter":
		column := sortColumns[m.sortSelected]
		if m.sortColumn == column {
			m.sortAscending = !m.sortAscending
		} else {
			m.sortColumn = column
			m.sortAscending = true
		}
		m.modal = ModalNone
		m.recomputeVisible()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" || msg.String() == "enter":
		m.modal = ModalNone
		return m, nil
	case keyMatches(msg, m.keys.Cancel):
		if job := m.focusedJob(); job != nil {
			return m.requestCancel(job)
		}
		return m, nil
	case keyMatches(msg, m.keys.Yank):
		m.yankJobID()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// handleMouse maps wheel scroll to selection movement and a left click
// to row selection. Modals swallow mouse input, except the detail
// viewport which scrolls.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != ModalNone {
		if m.modal == ModalDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.navigate(func(l *ListState, n int) { l.MoveUp(n) })
	case msg.Button == tea.MouseButtonWheelDown:
		m.navigate(func(l *ListState, n int) { l.MoveDown(n) })
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.selectAtRow(msg.Y)
	}
	return m, nil
}

// selectAtRow maps a clicked terminal row to a list selection. The
// list body starts below the header line and the column-title line.
// Views whose rows do not map one-to-one to list entries (node grid,
// grouped jobs with account headers, the panel views) ignore clicks.
func (m *Model) selectAtRow(y int) {
	row := y - 2
	if row < 0 {
		return
	}
	switch m.view {
	case ViewJobs:
		if !m.groupByAccount {
			m.jobsList.SelectVisible(row, len(m.visibleJobs))
		}
	case ViewNodes:
		if !m.gridMode {
			m.nodesList.SelectVisible(row, len(m.nodes))
		}
	case ViewPartitions:
		m.partitionsList.SelectVisible(row, len(m.partitions))
	}
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case keyMatches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case keyMatches(msg, keys.Help):
		m.modal = ModalHelp
		return m, nil

	case keyMatches(msg, keys.Escape):
		if m.activeFilter != "" {
			m.activeFilter = ""
			m.recomputeVisible()
		}
		return m, nil

	// Navigation.
	case keyMatches(msg, keys.Up):
		m.navigate(func(l *ListState, n int) { l.MoveUp(n) })
		return m, nil
	case keyMatches(msg, keys.Down):
		m.navigate(func(l *ListState, n int) { l.MoveDown(n) })
		return m, nil
	case keyMatches(msg, keys.Top):
		m.navigate(func(l *ListState, n int) { l.MoveToTop() })
		return m, nil
	case keyMatches(msg, keys.Bottom):
		m.navigate(func(l *ListState, n int) { l.MoveToBottom(n) })
		return m, nil
	case keyMatches(msg, keys.PageUp):
		m.navigate(func(l *ListState, n int) { l.PageUp(n) })
		return m, nil
	case keyMatches(msg, keys.PageDown):
		m.navigate(func(l *ListState, n int) { l.PageDown(n) })
		return m, nil

	// View switching.
	case keyMatches(msg, keys.ViewJobs):
		m.switchView(ViewJobs)
		return m, nil
	case keyMatches(msg, keys.ViewNodes):
		m.switchView(ViewNodes)
		return m, nil
	case keyMatches(msg, keys.ViewPartitions):
		m.switchView(ViewPartitions)
		return m, nil
	case keyMatches(msg, keys.ViewPersonal):
		m.switchView(ViewPersonal)
		return m, nil
	case keyMatches(msg, keys.ViewProblems):
		m.switchView(ViewProblems)
		return m, nil
	case keyMatches(msg, keys.Tab):
		switch m.view {
		case ViewPersonal:
			m.personal = m.personal.next()
		case ViewProblems:
			m.problems = m.problems.next()
		default:
			m.switchView(m.view.Next())
		}
		return m, nil

	// Actions.
	case keyMatches(msg, keys.Select):
		if job := m.focusedJob(); job != nil {
			m.openDetail(job)
		}
		return m, nil

	case keyMatches(msg, keys.Cancel):
		if m.view == ViewJobs || m.view == ViewPersonal {
			if job := m.focusedJob(); job != nil {
				return m.requestCancel(job)
			}
		}
		return m, nil

	case keyMatches(msg, keys.Refresh):
		m.control.KickJobs()
		return m, nil

	case keyMatches(msg, keys.ToggleAll):
		m.showAllJobs = !m.showAllJobs
		m.pushJobFilter()
		return m, nil

	case keyMatches(msg, keys.CycleAccount):
		m.cycleAccount()
		m.recomputeVisible()
		return m, nil

	case keyMatches(msg, keys.GroupByAccount):
		if m.view == ViewJobs {
			m.groupByAccount = !m.groupByAccount
			m.recomputeVisible()
		}
		return m, nil

	case keyMatches(msg, keys.Filter):
		m.openFilter(advancedFilter)
		return m, textinput.Blink

	case keyMatches(msg, keys.QuickSearch):
		m.openFilter(quickSearch)
		return m, textinput.Blink

	case keyMatches(msg, keys.Sort):
		if m.view == ViewJobs {
			m.modal = ModalSort
			m.sortSelected = 0
			for i, col := range sortColumns {
				if col == m.sortColumn {
					m.sortSelected = i
				}
			}
		}
		return m, nil

	case keyMatches(msg, keys.Yank):
		m.yankJobID()
		return m, nil

	case keyMatches(msg, keys.ToggleGrid):
		if m.view == ViewNodes {
			m.gridMode = !m.gridMode
		}
		return m, nil

	case keyMatches(msg, keys.ExportJSON):
		m.exportCurrentView(ExportJSON)
		return m, nil

	case keyMatches(msg, keys.ExportCSV):
		m.exportCurrentView(ExportCSV)
		return m, nil
	}

	return m, nil
}

func (m *Model) switchView(v View) {
	m.prevView = m.view
	m.view = v
}

// navigate applies a movement to whichever list currently has focus.
func (m *Model) navigate(move func(*ListState, int)) {
	switch m.view {
	case ViewJobs:
		move(&m.jobsList, len(m.visibleJobs))
	case ViewNodes:
		move(&m.nodesList, len(m.nodes))
	case ViewPartitions:
		move(&m.partitionsList, len(m.partitions))
	case ViewPersonal:
		switch m.personal {
		case panelRunning:
			move(&m.runningList, len(m.runningJobs))
		case panelPending:
			move(&m.pendingList, len(m.pendingJobs))
		case panelFairshare:
			move(&m.fairshareList, len(m.fairshare))
		}
	case ViewProblems:
		if m.problems == panelDown {
			move(&m.downList, len(m.downNodes))
		} else {
			move(&m.drainingList, len(m.drainNodes))
		}
	}
}

// focusedJob resolves the selected job in the Jobs view or the focused
// Personal panel, nil elsewhere.
func (m *Model) focusedJob() *model.Job {
	switch m.view {
	case ViewJobs:
		if m.jobsList.Selected < len(m.visibleJobs) {
			return &m.jobs[m.visibleJobs[m.jobsList.Selected]]
		}
	case ViewPersonal:
		switch m.personal {
		case panelRunning:
			if m.runningList.Selected < len(m.runningJobs) {
				return &m.jobs[m.runningJobs[m.runningList.Selected]]
			}
		case panelPending:
			if m.pendingList.Selected < len(m.pendingJobs) {
				return &m.jobs[m.pendingJobs[m.pendingList.Selected]]
			}
		}
	}
	return nil
}

func (m *Model) openFilter(kind filterKind) {
	m.filterType = kind
	m.filterInput.SetValue(m.activeFilter)
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
	m.modal = ModalFilter
}

func (m *Model) openDetail(job *model.Job) {
	m.detail.SetContent(renderJobDetail(m.styles, job, time.Now()))
	m.detail.GotoTop()
	m.modal = ModalDetail
}

// requestCancel opens the confirm dialog, or skips straight to the
// cancel when confirmation is disabled in config.
func (m Model) requestCancel(job *model.Job) (tea.Model, tea.Cmd) {
	action := ConfirmAction{
		JobID:   job.JobID,
		JobName: job.Name,
		IsArray: job.IsArray(),
	}
	if action.IsArray {
		action.TaskCount = 1
		if base, ok := job.ArrayJobID.Value(); ok {
			count := int64(0)
			for i := range m.jobs {
				if b, ok := m.jobs[i].ArrayJobID.Value(); ok && b == base {
					count++
				}
			}
			if count > 0 {
				action.TaskCount = count
			}
			action.JobID = base
		}
	}

	if !m.cfg.Behavior.ConfirmCancel {
		return m.executeCancel(action.JobID)
	}
	m.confirmAction = action
	m.modal = ModalConfirm
	return m, nil
}

func (m Model) executeCancel(jobID int64) (tea.Model, tea.Cmd) {
	m.feedback.setAction(fmt.Sprintf("Cancelling job %d...", jobID), true, time.Now())
	m.control.Cancel(m.ctx, jobID)
	return m, nil
}

func (m *Model) yankJobID() {
	job := m.focusedJob()
	if job == nil {
		return
	}
	id := job.DisplayID()
	if !m.cfg.Behavior.CopyToClipboard {
		m.feedback.setAction("Clipboard disabled in config", false, time.Now())
		return
	}
	if err := clipboard.WriteAll(id); err != nil {
		m.feedback.setAction("Failed to copy (no clipboard)", false, time.Now())
		return
	}
	m.feedback.setAction("Copied: "+id, true, time.Now())
}

// cycleAccount steps None -> first -> ... -> last -> None.
func (m *Model) cycleAccount() {
	if len(m.accounts) == 0 {
		return
	}
	if m.focusedAccount == "" {
		m.focusedAccount = m.accounts[0]
		return
	}
	for i, acct := range m.accounts {
		if acct == m.focusedAccount {
			if i+1 < len(m.accounts) {
				m.focusedAccount = m.accounts[i+1]
			} else {
				m.focusedAccount = ""
			}
			return
		}
	}
	m.focusedAccount = ""
}

func (m *Model) accountDisplay() string {
	if m.focusedAccount == "" {
		return "all"
	}
	return m.focusedAccount
}

// pushJobFilter recomputes the server-side jobs filter from the
// show-all toggle and hands it to the runtime, which refetches.
func (m *Model) pushJobFilter() {
	filter := slurm.JobFilter{}
	if !m.showAllJobs && m.username != "" {
		filter.Users = []string{m.username}
	}
	m.control.SetJobFilter(filter)
}

// exportCurrentView writes the visible rows of the current view to a
// timestamped file in the working directory.
func (m *Model) exportCurrentView(format ExportFormat) {
	now := time.Now()
	var (
		content  string
		err      error
		filename string
		count    int
		what     string
	)
	switch m.view {
	case ViewJobs:
		visible := make([]model.Job, 0, len(m.visibleJobs))
		for _, i := range m.visibleJobs {
			visible = append(visible, m.jobs[i])
		}
		content, err = ExportJobs(visible, format)
		filename = exportFilename("jobs", format, now)
		count, what = len(visible), "jobs"
	case ViewNodes:
		content, err = ExportNodes(m.nodes, format)
		filename = exportFilename("nodes", format, now)
		count, what = len(m.nodes), "nodes"
	case ViewPartitions:
		content, err = ExportPartitions(m.partitions, format)
		filename = exportFilename("partitions", format, now)
		count, what = len(m.partitions), "partitions"
	default:
		m.feedback.setAction("Export not supported for this view", false, now)
		return
	}
	if err != nil {
		m.feedback.setAction(fmt.Sprintf("Export failed: %v", err), false, now)
		return
	}
	msg, ok := writeExportFile(filename, content, count, what)
	m.feedback.setAction(msg, ok, now)
}
