package timeclock

// WarnBreakBeforeClockOut is shown whenever a session is on break, since
// clock-out is withheld until the break ends.
const WarnBreakBeforeClockOut = "clock-out unavailable until break ends"

// Projection is the presentation of a session state: a status label, the
// actions a surface may offer, and warnings to render alongside them.
type Projection struct {
	State          State
	Label          string
	EnabledActions []Action
	Warnings       []string
}

// ActionEnabled reports whether the projection offers the given action.
func (p Projection) ActionEnabled(action Action) bool {
	for _, a := range p.EnabledActions {
		if a == action {
			return true
		}
	}
	return false
}

// Project maps a state to its presentation. It is pure and deterministic;
// the clock-out guard shows up here as BREAK not offering clock-out.
// Unknown states are treated as OFF, matching the NoSession normalization.
func Project(state State) Projection {
	switch state {
	case StateWorking:
		return Projection{
			State:          state,
			Label:          "Working",
			EnabledActions: []Action{ActionBreakStart, ActionClockOut},
		}
	case StateBreak:
		return Projection{
			State:          state,
			Label:          "On break",
			EnabledActions: []Action{ActionBreakEnd},
			Warnings:       []string{WarnBreakBeforeClockOut},
		}
	case StateClosed:
		return Projection{
			State: state,
			Label: "Shift complete",
		}
	default:
		return Projection{
			State:          StateOff,
			Label:          "Not clocked in",
			EnabledActions: []Action{ActionClockIn},
		}
	}
}
