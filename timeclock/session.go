// Package timeclock models a staff member's working day as a small state
// machine driven by the GastroCore backend. The server owns the session
// record and all duration math; this package owns action legality, the
// presentation projection, and refresh coordination for client surfaces.
package timeclock

import (
	"fmt"
	"time"
)

// State is the lifecycle position of a session.
type State string

const (
	StateOff     State = "off"
	StateWorking State = "working"
	StateBreak   State = "break"
	StateClosed  State = "closed"
)

// Valid reports whether s is one of the four known states.
func (s State) Valid() bool {
	switch s {
	case StateOff, StateWorking, StateBreak, StateClosed:
		return true
	}
	return false
}

// Action is one of the four timeclock operations a staff member can take.
type Action string

const (
	ActionClockIn    Action = "clock-in"
	ActionClockOut   Action = "clock-out"
	ActionBreakStart Action = "break-start"
	ActionBreakEnd   Action = "break-end"
)

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionClockIn, ActionClockOut, ActionBreakStart, ActionBreakEnd}
}

// ParseAction validates a wire action name.
func ParseAction(v string) (Action, error) {
	switch a := Action(v); a {
	case ActionClockIn, ActionClockOut, ActionBreakStart, ActionBreakEnd:
		return a, nil
	}
	return "", fmt.Errorf("unknown timeclock action %q", v)
}

// Break is one contiguous non-working interval within a session. A nil
// EndAt means the break is still open; DurationSeconds stays 0 until the
// server closes it.
type Break struct {
	StartAt         time.Time
	EndAt           *time.Time
	DurationSeconds int64
}

// Open reports whether the break has not ended yet.
func (b Break) Open() bool { return b.EndAt == nil }

// Session is one employee's continuous workday attendance record as
// reported by the server. All *Seconds fields are server-computed; clients
// must not rebuild them from their own clock.
type Session struct {
	State             State
	ClockInAt         *time.Time
	ClockOutAt        *time.Time
	TotalWorkSeconds  int64
	TotalBreakSeconds int64
	NetWorkSeconds    int64
	Breaks            []Break
}

// NoSession is the normalized "no session today" value: state OFF,
// everything else zero. Both the absence marker from the server and a
// failed status fetch read as this.
func NoSession() Session {
	return Session{State: StateOff}
}

// OpenBreak returns the at-most-one break without an end time, or nil.
func (s Session) OpenBreak() *Break {
	for i := range s.Breaks {
		if s.Breaks[i].Open() {
			return &s.Breaks[i]
		}
	}
	return nil
}

// Validate checks the session invariants: the duration identity
// net = work − break with every term non-negative, at most one open break,
// chronological break order, and timestamps consistent with the state.
func (s Session) Validate() error {
	if !s.State.Valid() {
		return fmt.Errorf("unknown session state %q", s.State)
	}
	if s.TotalWorkSeconds < 0 || s.TotalBreakSeconds < 0 || s.NetWorkSeconds < 0 {
		return fmt.Errorf("negative duration: work=%d break=%d net=%d",
			s.TotalWorkSeconds, s.TotalBreakSeconds, s.NetWorkSeconds)
	}
	if s.NetWorkSeconds != s.TotalWorkSeconds-s.TotalBreakSeconds {
		return fmt.Errorf("net seconds mismatch: %d != %d - %d",
			s.NetWorkSeconds, s.TotalWorkSeconds, s.TotalBreakSeconds)
	}

	open := 0
	for i, b := range s.Breaks {
		if b.Open() {
			open++
		} else if b.EndAt.Before(b.StartAt) {
			return fmt.Errorf("break %d ends before it starts", i)
		}
		if i > 0 && b.StartAt.Before(s.Breaks[i-1].StartAt) {
			return fmt.Errorf("break %d out of chronological order", i)
		}
	}
	if open > 1 {
		return fmt.Errorf("%d open breaks, at most one allowed", open)
	}

	switch s.State {
	case StateOff:
		if s.ClockInAt != nil || s.ClockOutAt != nil || len(s.Breaks) > 0 {
			return fmt.Errorf("state off with session data present")
		}
	case StateWorking:
		if s.ClockInAt == nil {
			return fmt.Errorf("state working without clock-in time")
		}
		if s.ClockOutAt != nil {
			return fmt.Errorf("state working with clock-out time set")
		}
		if open != 0 {
			return fmt.Errorf("state working with an open break")
		}
	case StateBreak:
		if s.ClockInAt == nil {
			return fmt.Errorf("state break without clock-in time")
		}
		if s.ClockOutAt != nil {
			return fmt.Errorf("state break with clock-out time set")
		}
		if open != 1 {
			return fmt.Errorf("state break without an open break")
		}
	case StateClosed:
		if s.ClockInAt == nil || s.ClockOutAt == nil {
			return fmt.Errorf("state closed without clock-in and clock-out times")
		}
		if open != 0 {
			return fmt.Errorf("state closed with an open break")
		}
	}
	return nil
}
