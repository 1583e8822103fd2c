package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(string(a))
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("clock_in")
	assert.Error(t, err)
	_, err = ParseAction("")
	assert.Error(t, err)
}

func TestOpenBreak(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)

	s := Session{
		State:  StateBreak,
		Breaks: []Break{{StartAt: start.Add(-2 * time.Hour), EndAt: &end}, {StartAt: start}},
	}
	open := s.OpenBreak()
	if assert.NotNil(t, open) {
		assert.Equal(t, start, open.StartAt)
	}

	assert.Nil(t, NoSession().OpenBreak())
}

func TestSessionValidate(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)
	breakStart := clockIn.Add(3 * time.Hour)
	breakEnd := breakStart.Add(30 * time.Minute)

	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name:    "No session",
			session: NoSession(),
		},
		{
			name: "Working with a closed break",
			session: Session{
				State:             StateWorking,
				ClockInAt:         &clockIn,
				TotalWorkSeconds:  4 * 3600,
				TotalBreakSeconds: 1800,
				NetWorkSeconds:    4*3600 - 1800,
				Breaks:            []Break{{StartAt: breakStart, EndAt: &breakEnd, DurationSeconds: 1800}},
			},
		},
		{
			name: "On break with one open break",
			session: Session{
				State:            StateBreak,
				ClockInAt:        &clockIn,
				TotalWorkSeconds: 3 * 3600,
				NetWorkSeconds:   3 * 3600,
				Breaks:           []Break{{StartAt: breakStart}},
			},
		},
		{
			name: "Closed session",
			session: Session{
				State:             StateClosed,
				ClockInAt:         &clockIn,
				ClockOutAt:        &clockOut,
				TotalWorkSeconds:  8 * 3600,
				TotalBreakSeconds: 1800,
				NetWorkSeconds:    8*3600 - 1800,
				Breaks:            []Break{{StartAt: breakStart, EndAt: &breakEnd, DurationSeconds: 1800}},
			},
		},
		{
			name: "Net seconds mismatch",
			session: Session{
				State:             StateWorking,
				ClockInAt:         &clockIn,
				TotalWorkSeconds:  3600,
				TotalBreakSeconds: 600,
				NetWorkSeconds:    3600,
			},
			wantErr: true,
		},
		{
			name: "Negative break seconds",
			session: Session{
				State:             StateWorking,
				ClockInAt:         &clockIn,
				TotalWorkSeconds:  3600,
				TotalBreakSeconds: -600,
				NetWorkSeconds:    4200,
			},
			wantErr: true,
		},
		{
			name: "Two open breaks",
			session: Session{
				State:     StateBreak,
				ClockInAt: &clockIn,
				Breaks:    []Break{{StartAt: breakStart}, {StartAt: breakStart.Add(time.Minute)}},
			},
			wantErr: true,
		},
		{
			name: "Breaks out of order",
			session: Session{
				State:     StateBreak,
				ClockInAt: &clockIn,
				Breaks:    []Break{{StartAt: breakStart}, {StartAt: breakStart.Add(-time.Hour), EndAt: &breakEnd}},
			},
			wantErr: true,
		},
		{
			name: "Working with clock-out set",
			session: Session{
				State:      StateWorking,
				ClockInAt:  &clockIn,
				ClockOutAt: &clockOut,
			},
			wantErr: true,
		},
		{
			name: "Break state without open break",
			session: Session{
				State:     StateBreak,
				ClockInAt: &clockIn,
			},
			wantErr: true,
		},
		{
			name: "Closed without clock-out",
			session: Session{
				State:     StateClosed,
				ClockInAt: &clockIn,
			},
			wantErr: true,
		},
		{
			name: "Off with leftover data",
			session: Session{
				State:     StateOff,
				ClockInAt: &clockIn,
			},
			wantErr: true,
		},
		{
			name:    "Unknown state",
			session: Session{State: State("helping")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
