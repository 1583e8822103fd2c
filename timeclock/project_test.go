package timeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		label    string
		enabled  []Action
		warnings []string
	}{
		{
			name:    "Off offers clock in only",
			state:   StateOff,
			label:   "Not clocked in",
			enabled: []Action{ActionClockIn},
		},
		{
			name:    "Working offers break start and clock out",
			state:   StateWorking,
			label:   "Working",
			enabled: []Action{ActionBreakStart, ActionClockOut},
		},
		{
			name:     "Break offers break end only and warns",
			state:    StateBreak,
			label:    "On break",
			enabled:  []Action{ActionBreakEnd},
			warnings: []string{WarnBreakBeforeClockOut},
		},
		{
			name:    "Closed offers nothing",
			state:   StateClosed,
			label:   "Shift complete",
			enabled: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(tt.state)
			assert.Equal(t, tt.state, p.State)
			assert.Equal(t, tt.label, p.Label)
			assert.ElementsMatch(t, tt.enabled, p.EnabledActions)
			assert.Equal(t, tt.warnings, p.Warnings)
		})
	}
}

func TestProjectIsPure(t *testing.T) {
	for _, state := range []State{StateOff, StateWorking, StateBreak, StateClosed} {
		assert.Equal(t, Project(state), Project(state))
	}
}

// The guard must already be visible in the projection: clock-out is never
// offered while on break.
func TestProjectWithholdsClockOutOnBreak(t *testing.T) {
	p := Project(StateBreak)

	assert.False(t, p.ActionEnabled(ActionClockOut))
	assert.True(t, p.ActionEnabled(ActionBreakEnd))
	assert.Equal(t, []string{WarnBreakBeforeClockOut}, p.Warnings)
}

func TestProjectUnknownStateReadsAsOff(t *testing.T) {
	p := Project(State("bogus"))

	assert.Equal(t, StateOff, p.State)
	assert.ElementsMatch(t, []Action{ActionClockIn}, p.EnabledActions)
}

// Projection and transition table must agree: everything offered is legal,
// everything withheld is rejected.
func TestProjectionMatchesTransitionTable(t *testing.T) {
	for _, state := range []State{StateOff, StateWorking, StateBreak, StateClosed} {
		p := Project(state)
		for _, action := range Actions() {
			assert.Equal(t, Allowed(state, action), p.ActionEnabled(action),
				"state %s action %s", state, action)
		}
	}
}
