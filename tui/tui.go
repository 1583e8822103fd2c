// Package tui renders the interactive timeclock panel: the current session
// state, the actions it admits and transient outcome notices, refreshed on
// a poll tick and on demand.
package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carlsburger/gastrocore/timeclock"
)

// Backend is the remote half of the panel: status reads plus action sends.
// The timeclock endpoint of the API client satisfies it.
type Backend interface {
	timeclock.StatusSource
	timeclock.ActionSender
}

// Run drives the panel until the user quits. Closing the program tears the
// poll tick down with it; an in-flight status request simply resolves into
// a discarded message.
func Run(backend Backend, reporter timeclock.Reporter, log *slog.Logger, pollEvery, timeout time.Duration) error {
	ref := timeclock.NewRefresher(backend, log, timeclock.RefresherOptions{
		Interval: pollEvery,
		Timeout:  timeout,
	})
	exec := timeclock.NewExecutor(backend, ref, reporter, log)

	p := tea.NewProgram(NewPanelModel(exec, ref, pollEvery), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
