package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/session"
	"github.com/echodeck/echodeck/internal/stream"
)

// Pane represents which pane is active in the dashboard
type Pane int

const (
	// PaneFocus is the prioritized focus queue
	PaneFocus Pane = iota
	// PaneStream is the raw inbox stream
	PaneStream
	// PanePlan is the generated daily plan
	PanePlan
)

// DashboardModel is the Bubble Tea model for the interactive dashboard
type DashboardModel struct {
	sess *session.Session

	state        session.State
	streamItems  []model.InboxItem
	plan         *model.DailyPlan
	activePane   Pane
	focusCursor  int
	streamCursor int
	moveMode     bool
	windowWidth  int
	windowHeight int
	statusMsg    string
	statusIsErr  bool
	refreshing   bool
	planPending  bool
	quitting     bool
	spin         spinner.Model
}

// NewDashboardModel creates a dashboard model over an existing session.
func NewDashboardModel(sess *session.Session) DashboardModel {
	m := DashboardModel{
		sess:         sess,
		windowWidth:  80,
		windowHeight: 24,
		spin:         spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(dimStyle)),
	}
	m.reload()
	return m
}

// reload pulls fresh session state into the model.
func (m *DashboardModel) reload() {
	m.state = m.sess.Snapshot()
	m.streamItems = m.sess.Stream(stream.Filter{})
	m.clampCursors()
}

func (m *DashboardModel) clampCursors() {
	if m.focusCursor >= len(m.state.Queue) {
		m.focusCursor = len(m.state.Queue) - 1
	}
	if m.focusCursor < 0 {
		m.focusCursor = 0
	}
	if m.streamCursor >= len(m.streamItems) {
		m.streamCursor = len(m.streamItems) - 1
	}
	if m.streamCursor < 0 {
		m.streamCursor = 0
	}
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	if m.state.ItemCount == 0 {
		return m.startRefresh()
	}
	return nil
}

// refreshDoneMsg reports a finished background refresh.
type refreshDoneMsg struct {
	err error
}

// planDoneMsg reports a finished plan generation.
type planDoneMsg struct {
	plan *model.DailyPlan
	err  error
}

// clearStatusMsg is a message to clear the status
type clearStatusMsg struct{}

func (m *DashboardModel) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	m.statusMsg = "Refreshing..."
	m.statusIsErr = false
	sess := m.sess
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return refreshDoneMsg{err: sess.Refresh(context.Background())}
	})
}

func (m *DashboardModel) startPlan() tea.Cmd {
	if m.planPending {
		return nil
	}
	m.planPending = true
	sess := m.sess
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		plan, err := sess.Plan(context.Background())
		return planDoneMsg{plan: plan, err: err}
	})
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.statusMsg = "Refresh failed: " + msg.err.Error()
			m.statusIsErr = true
		} else {
			m.statusMsg = "Refreshed"
			m.statusIsErr = false
		}
		m.reload()
		return m, clearStatusAfter(3 * time.Second)

	case planDoneMsg:
		m.planPending = false
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.statusIsErr = true
			return m, clearStatusAfter(3 * time.Second)
		}
		m.plan = msg.plan
		m.activePane = PanePlan
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing && !m.planPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if m.moveMode && msg.String() == "esc" {
			m.moveMode = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.moveMode = false
		m.activePane = (m.activePane + 1) % 3
		return m, nil

	case "1", "2", "3":
		if m.activePane == PaneFocus && !m.moveMode {
			tiers := map[string]model.Category{
				"1": model.CategoryUrgent,
				"2": model.CategoryImportant,
				"3": model.CategoryRoutine,
			}
			m.sess.SetTier(tiers[msg.String()])
			m.focusCursor = 0
			m.reload()
		}
		return m, nil

	case "j", "down":
		return m.moveCursor(1)

	case "k", "up":
		return m.moveCursor(-1)

	case "g", "home":
		return m.setCursor(0)

	case "G", "end":
		return m.setCursor(m.activeLen() - 1)

	case "m":
		if m.activePane == PaneFocus && len(m.state.Queue) > 0 {
			m.moveMode = !m.moveMode
		}
		return m, nil

	case "d", " ":
		return m.completeSelected()

	case "r":
		return m, m.startRefresh()

	case "p":
		return m, m.startPlan()
	}

	return m, nil
}

func (m DashboardModel) activeLen() int {
	switch m.activePane {
	case PaneStream:
		return len(m.streamItems)
	case PanePlan:
		return 0
	default:
		return len(m.state.Queue)
	}
}

func (m DashboardModel) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if m.moveMode && m.activePane == PaneFocus {
		return m.moveTask(delta)
	}
	return m.setCursor(m.activeCursor() + delta)
}

func (m DashboardModel) activeCursor() int {
	if m.activePane == PaneStream {
		return m.streamCursor
	}
	return m.focusCursor
}

func (m DashboardModel) setCursor(pos int) (tea.Model, tea.Cmd) {
	n := m.activeLen()
	if n == 0 {
		return m, nil
	}
	if pos < 0 {
		pos = 0
	}
	if pos > n-1 {
		pos = n - 1
	}
	if m.activePane == PaneStream {
		m.streamCursor = pos
	} else {
		m.focusCursor = pos
	}
	return m, nil
}

// moveTask swaps the selected task with its neighbor via a reorder.
func (m DashboardModel) moveTask(delta int) (tea.Model, tea.Cmd) {
	target := m.focusCursor + delta
	if target < 0 || target >= len(m.state.Queue) {
		return m, nil
	}
	moved := m.state.Queue[m.focusCursor]
	neighbor := m.state.Queue[target]
	if m.sess.Reorder(moved.ID, neighbor.ID) {
		m.focusCursor = target
		m.reload()
	}
	return m, nil
}

// completeSelected marks the selected task done and reflects any tier
// auto-advance.
func (m DashboardModel) completeSelected() (tea.Model, tea.Cmd) {
	if m.activePane != PaneFocus || len(m.state.Queue) == 0 {
		return m, nil
	}
	task := m.state.Queue[m.focusCursor]
	before := m.state.Tier
	if !m.sess.CompleteTask(task.ID) {
		return m, nil
	}
	m.moveMode = false
	m.reload()

	if m.state.Tier != before {
		m.statusMsg = "Tier clear. Moving to " + string(m.state.Tier)
		m.focusCursor = 0
	} else {
		m.statusMsg = "Done: " + task.Title
	}
	m.statusIsErr = false
	return m, clearStatusAfter(2 * time.Second)
}

// clearStatusAfter returns a command that clears the status after a delay
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// View implements tea.Model
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	return renderDashboard(m)
}
