package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/utils"
)

// pollTickMsg fires on the poll interval and triggers a refresh.
type pollTickMsg struct{}

// refreshDoneMsg carries the snapshot a refresh settled on.
type refreshDoneMsg struct {
	session timeclock.Session
}

// actionDoneMsg carries the outcome of one dispatched action.
type actionDoneMsg struct {
	action  timeclock.Action
	session timeclock.Session
	err     error
}

// noticeExpireMsg clears the transient notice line.
type noticeExpireMsg struct{ id int }

const noticeFor = 5 * time.Second

// PanelModel is the interactive timeclock panel. State reads go through
// the shared Refresher so a keypress-triggered refresh and the poll tick
// never tear the snapshot; actions go through the Executor, which enforces
// the break guard before anything touches the network.
type PanelModel struct {
	executor  *timeclock.Executor
	refresher *timeclock.Refresher
	pollEvery time.Duration

	session  timeclock.Session
	spin     spinner.Model
	notice   string
	noticeID int
	busy     bool
	width    int
	quitting bool
}

// NewPanelModel builds the panel around a refresher/executor pair.
func NewPanelModel(executor *timeclock.Executor, refresher *timeclock.Refresher, pollEvery time.Duration) PanelModel {
	if pollEvery <= 0 {
		pollEvery = timeclock.DefaultInterval
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	return PanelModel{
		executor:  executor,
		refresher: refresher,
		pollEvery: pollEvery,
		session:   timeclock.NoSession(),
		spin:      sp,
	}
}

func (m PanelModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd(), m.pollTick())
}

func (m PanelModel) pollTick() tea.Cmd {
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// refreshCmd runs one status refresh. The refresher discards the response
// if a later request or an adopted action result superseded it.
func (m PanelModel) refreshCmd() tea.Cmd {
	ref := m.refresher
	return func() tea.Msg {
		return refreshDoneMsg{session: ref.Refresh(context.Background())}
	}
}

// actionCmd dispatches one action through the executor.
func (m PanelModel) actionCmd(action timeclock.Action) tea.Cmd {
	exec := m.executor
	return func() tea.Msg {
		sess, err := exec.Apply(context.Background(), action)
		return actionDoneMsg{action: action, session: sess, err: err}
	}
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tea.Batch(m.refreshCmd(), m.pollTick())

	case refreshDoneMsg:
		m.session = msg.session
		return m, nil

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.withNotice(actionNotice(msg.action, msg.err))
		}
		m.session = msg.session
		return m, nil

	case noticeExpireMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PanelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		return m, m.refreshCmd()
	case "i":
		return m.dispatch(timeclock.ActionClockIn)
	case "o":
		return m.dispatch(timeclock.ActionClockOut)
	case "b":
		return m.dispatch(timeclock.ActionBreakStart)
	case "e":
		return m.dispatch(timeclock.ActionBreakEnd)
	}
	return m, nil
}

// dispatch checks the projection before sending, so a disabled action never
// reaches the executor from the panel. The executor re-checks anyway.
func (m PanelModel) dispatch(action timeclock.Action) (tea.Model, tea.Cmd) {
	if m.busy {
		return m.withNotice("still waiting for the previous action")
	}
	p := timeclock.Project(m.session.State)
	if !p.ActionEnabled(action) {
		if action == timeclock.ActionClockOut && m.session.State == timeclock.StateBreak {
			return m.withNotice(timeclock.WarnBreakBeforeClockOut)
		}
		return m.withNotice(fmt.Sprintf("%s not available while %s", action, strings.ToLower(p.Label)))
	}
	m.busy = true
	return m, m.actionCmd(action)
}

func (m PanelModel) withNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeID++
	id := m.noticeID
	return m, tea.Tick(noticeFor, func(time.Time) tea.Msg {
		return noticeExpireMsg{id: id}
	})
}

func actionNotice(action timeclock.Action, err error) string {
	switch {
	case errors.Is(err, timeclock.ErrGuardViolation):
		return timeclock.WarnBreakBeforeClockOut
	case errors.Is(err, timeclock.ErrConflict):
		return fmt.Sprintf("%s rejected: session changed on another device", action)
	case errors.Is(err, timeclock.ErrUnavailable):
		return fmt.Sprintf("%s failed: service unavailable", action)
	case errors.Is(err, timeclock.ErrAuth):
		return "credential rejected, waiting for token refresh"
	}
	return fmt.Sprintf("%s failed", action)
}

func (m PanelModel) View() string {
	if m.quitting {
		return ""
	}

	p := timeclock.Project(m.session.State)
	var lines []string

	header := titleStyle.Render("GASTROCLOCK")
	if m.busy || m.refresher.InFlight() {
		header += "  " + m.spin.View() + subtleStyle.Render("syncing")
	}
	lines = append(lines, header, "")

	lines = append(lines, stateStyle(m.session.State).Render(p.Label))

	if m.session.ClockInAt != nil {
		lines = append(lines, textStyle.Render(
			fmt.Sprintf("clocked in %s", m.session.ClockInAt.In(utils.VenueTZ).Format("15:04"))))
	}
	if m.session.State != timeclock.StateOff {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("worked %s · breaks %s · net %s",
			utils.FormatSeconds(int(m.session.TotalWorkSeconds)),
			utils.FormatSeconds(int(m.session.TotalBreakSeconds)),
			utils.FormatSeconds(int(m.session.NetWorkSeconds)))))
	}
	for _, w := range p.Warnings {
		lines = append(lines, warningStyle.Render("⚠ "+w))
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}

	lines = append(lines, "", m.renderHints(p))

	return panelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// renderHints shows a key hint per enabled action plus the always-on keys.
func (m PanelModel) renderHints(p timeclock.Projection) string {
	var hints []string
	for _, a := range p.EnabledActions {
		hints = append(hints, keyStyle.Render(actionKey(a))+helpStyle.Render(" "+string(a)))
	}
	hints = append(hints,
		keyStyle.Render("r")+helpStyle.Render(" refresh"),
		keyStyle.Render("q")+helpStyle.Render(" quit"))
	return strings.Join(hints, helpStyle.Render("  ·  "))
}

func actionKey(action timeclock.Action) string {
	switch action {
	case timeclock.ActionClockIn:
		return "i"
	case timeclock.ActionClockOut:
		return "o"
	case timeclock.ActionBreakStart:
		return "b"
	case timeclock.ActionBreakEnd:
		return "e"
	}
	return "?"
}

func stateStyle(state timeclock.State) lipgloss.Style {
	switch state {
	case timeclock.StateWorking:
		return labelWorkingStyle
	case timeclock.StateBreak:
		return labelBreakStyle
	case timeclock.StateClosed:
		return labelClosedStyle
	}
	return labelOffStyle
}
