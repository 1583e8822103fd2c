package timeclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Executor applies timeclock actions against the backend, enforcing
// legality before dispatch. It never applies a state optimistically: the
// snapshot changes only after the server confirms the transition, and every
// confirmed transition triggers a status re-fetch so server-computed
// timestamps and durations win over anything assembled locally.
type Executor struct {
	sender   ActionSender
	ref      *Refresher
	reporter Reporter
	log      *slog.Logger
}

// NewExecutor builds an Executor sharing the Refresher's snapshot. A nil
// reporter discards outcome notices.
func NewExecutor(sender ActionSender, ref *Refresher, reporter Reporter, log *slog.Logger) *Executor {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{sender: sender, ref: ref, reporter: reporter, log: log}
}

// Current returns the last confirmed session snapshot.
func (e *Executor) Current() Session {
	return e.ref.Current()
}

// Apply validates action against the last known state, submits it, and
// reconciles the snapshot from the server's response.
//
// Locally determinable rejections (the break guard, off-table transitions)
// return before any remote call is issued. Remote rejections leave the
// local state untouched pending the next refresh: conflicts and transient
// failures are additionally reported as non-fatal notices, credential
// failures are propagated untranslated for the auth layer to handle.
func (e *Executor) Apply(ctx context.Context, action Action) (Session, error) {
	current := e.ref.Current()

	if action == ActionClockOut && !ClockOutAllowed(current.State) {
		return current, ErrGuardViolation
	}
	if _, err := NextState(current.State, action); err != nil {
		return current, err
	}

	sess, err := e.sender.Send(ctx, action)
	if err != nil {
		e.log.Warn("timeclock action failed", "action", action, "error", err)
		if !errors.Is(err, ErrAuth) {
			e.reporter.Error(failureNotice(action, err))
		}
		return current, fmt.Errorf("%s: %w", action, err)
	}

	e.ref.Adopt(sess)
	e.ref.Refresh(ctx)
	confirmed := e.ref.Current()
	e.reporter.Info(successNotice(action))
	return confirmed, nil
}

func successNotice(action Action) string {
	switch action {
	case ActionClockIn:
		return "clocked in"
	case ActionClockOut:
		return "clocked out"
	case ActionBreakStart:
		return "break started"
	case ActionBreakEnd:
		return "break ended"
	}
	return string(action)
}

func failureNotice(action Action, err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return fmt.Sprintf("%s rejected: session changed on another device", action)
	case errors.Is(err, ErrUnavailable):
		return fmt.Sprintf("%s failed: service unavailable, try again", action)
	}
	return fmt.Sprintf("%s failed", action)
}

type nopReporter struct{}

func (nopReporter) Info(string)  {}
func (nopReporter) Error(string) {}
