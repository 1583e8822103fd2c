package timeclock

// ClockOutAllowed is the load-bearing guard of the timeclock: a shift
// cannot be closed while a break is open. It is enforced twice, once when
// projecting the enabled actions and again at the executor boundary before
// any remote call.
func ClockOutAllowed(state State) bool {
	return state != StateBreak
}

// NextState applies the transition table:
//
//	OFF     --clock-in-->    WORKING
//	WORKING --break-start--> BREAK
//	WORKING --clock-out-->   CLOSED
//	BREAK   --break-end-->   WORKING
//
// Clock-out during a break returns ErrGuardViolation; every other pair the
// table does not admit returns ErrIllegalTransition. CLOSED is terminal for
// the day, the next shift starts with a fresh clock-in. On error the
// returned state is the input state, unchanged.
func NextState(state State, action Action) (State, error) {
	switch state {
	case StateOff:
		if action == ActionClockIn {
			return StateWorking, nil
		}
	case StateWorking:
		switch action {
		case ActionBreakStart:
			return StateBreak, nil
		case ActionClockOut:
			return StateClosed, nil
		}
	case StateBreak:
		switch action {
		case ActionBreakEnd:
			return StateWorking, nil
		case ActionClockOut:
			return state, ErrGuardViolation
		}
	}
	return state, ErrIllegalTransition
}

// Allowed reports whether the transition table admits action in state.
func Allowed(state State, action Action) bool {
	_, err := NextState(state, action)
	return err == nil
}
