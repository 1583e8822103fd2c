package timeclock_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/timeclock/mocks"
)

var clockInAt = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func workingSession() timeclock.Session {
	in := clockInAt
	return timeclock.Session{
		State:            timeclock.StateWorking,
		ClockInAt:        &in,
		TotalWorkSeconds: 3600,
		NetWorkSeconds:   3600,
	}
}

func breakSession() timeclock.Session {
	in := clockInAt
	return timeclock.Session{
		State:             timeclock.StateBreak,
		ClockInAt:         &in,
		TotalWorkSeconds:  3 * 3600,
		TotalBreakSeconds: 0,
		NetWorkSeconds:    3 * 3600,
		Breaks:            []timeclock.Break{{StartAt: in.Add(3 * time.Hour)}},
	}
}

func closedSession() timeclock.Session {
	in := clockInAt
	out := in.Add(8 * time.Hour)
	breakEnd := in.Add(3*time.Hour + 30*time.Minute)
	return timeclock.Session{
		State:             timeclock.StateClosed,
		ClockInAt:         &in,
		ClockOutAt:        &out,
		TotalWorkSeconds:  8 * 3600,
		TotalBreakSeconds: 1800,
		NetWorkSeconds:    8*3600 - 1800,
		Breaks: []timeclock.Break{
			{StartAt: in.Add(3 * time.Hour), EndAt: &breakEnd, DurationSeconds: 1800},
		},
	}
}

func newExecutor(src *mocks.StatusSource, sender *mocks.ActionSender, reporter *mocks.Reporter) (*timeclock.Executor, *timeclock.Refresher) {
	ref := timeclock.NewRefresher(src, testLogger(), timeclock.RefresherOptions{})
	return timeclock.NewExecutor(sender, ref, reporter, testLogger()), ref
}

func TestApplyClockIn(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	confirmed := workingSession()
	refetched := workingSession()
	refetched.TotalWorkSeconds = 3605
	refetched.NetWorkSeconds = 3605

	sender.On("Send", mock.Anything, timeclock.ActionClockIn).Return(confirmed, nil).Once()
	src.On("Status", mock.Anything).Return(refetched, nil).Once()
	reporter.On("Info", "clocked in").Once()

	exec, _ := newExecutor(src, sender, reporter)

	got, err := exec.Apply(context.Background(), timeclock.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, got.State)
	// The re-fetched session wins over the action response: durations are
	// always the server's latest word.
	assert.Equal(t, int64(3605), got.TotalWorkSeconds)
	require.NoError(t, got.Validate())

	p := timeclock.Project(got.State)
	assert.ElementsMatch(t,
		[]timeclock.Action{timeclock.ActionBreakStart, timeclock.ActionClockOut},
		p.EnabledActions)

	sender.AssertExpectations(t)
	src.AssertExpectations(t)
	reporter.AssertExpectations(t)
}

func TestApplyGuardBlocksClockOutDuringBreak(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	exec, ref := newExecutor(src, sender, reporter)
	ref.Adopt(breakSession())

	got, err := exec.Apply(context.Background(), timeclock.ActionClockOut)
	assert.ErrorIs(t, err, timeclock.ErrGuardViolation)
	assert.Equal(t, timeclock.StateBreak, got.State)
	assert.Equal(t, timeclock.StateBreak, exec.Current().State)

	// The guard is resolved locally: zero remote traffic.
	sender.AssertNumberOfCalls(t, "Send", 0)
	src.AssertNumberOfCalls(t, "Status", 0)
}

func TestApplyRejectsOffTableActionsLocally(t *testing.T) {
	tests := []struct {
		name    string
		session timeclock.Session
		action  timeclock.Action
		wantErr error
	}{
		{"Clock out while off", timeclock.NoSession(), timeclock.ActionClockOut, timeclock.ErrIllegalTransition},
		{"Break start while off", timeclock.NoSession(), timeclock.ActionBreakStart, timeclock.ErrIllegalTransition},
		{"Break end while off", timeclock.NoSession(), timeclock.ActionBreakEnd, timeclock.ErrIllegalTransition},
		{"Clock in while working", workingSession(), timeclock.ActionClockIn, timeclock.ErrIllegalTransition},
		{"Break end while working", workingSession(), timeclock.ActionBreakEnd, timeclock.ErrIllegalTransition},
		{"Clock in during break", breakSession(), timeclock.ActionClockIn, timeclock.ErrIllegalTransition},
		{"Break start during break", breakSession(), timeclock.ActionBreakStart, timeclock.ErrIllegalTransition},
		{"Clock out during break", breakSession(), timeclock.ActionClockOut, timeclock.ErrGuardViolation},
		{"Clock in after close", closedSession(), timeclock.ActionClockIn, timeclock.ErrIllegalTransition},
		{"Break start after close", closedSession(), timeclock.ActionBreakStart, timeclock.ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(mocks.StatusSource)
			sender := new(mocks.ActionSender)

			exec, ref := newExecutor(src, sender, new(mocks.Reporter))
			ref.Adopt(tt.session)

			got, err := exec.Apply(context.Background(), tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.session.State, got.State)
			sender.AssertNumberOfCalls(t, "Send", 0)
			src.AssertNumberOfCalls(t, "Status", 0)
		})
	}
}

func TestApplyBreakRoundTrip(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	onBreak := breakSession()
	afterBreak := workingSession()
	breakEnd := clockInAt.Add(3*time.Hour + 25*time.Minute)
	afterBreak.TotalWorkSeconds = 4 * 3600
	afterBreak.TotalBreakSeconds = 1500
	afterBreak.NetWorkSeconds = 4*3600 - 1500
	afterBreak.Breaks = []timeclock.Break{
		{StartAt: clockInAt.Add(3 * time.Hour), EndAt: &breakEnd, DurationSeconds: 1500},
	}
	closed := closedSession()

	sender.On("Send", mock.Anything, timeclock.ActionBreakStart).Return(onBreak, nil).Once()
	src.On("Status", mock.Anything).Return(onBreak, nil).Once()
	reporter.On("Info", "break started").Once()

	sender.On("Send", mock.Anything, timeclock.ActionBreakEnd).Return(afterBreak, nil).Once()
	src.On("Status", mock.Anything).Return(afterBreak, nil).Once()
	reporter.On("Info", "break ended").Once()

	sender.On("Send", mock.Anything, timeclock.ActionClockOut).Return(closed, nil).Once()
	src.On("Status", mock.Anything).Return(closed, nil).Once()
	reporter.On("Info", "clocked out").Once()

	exec, ref := newExecutor(src, sender, reporter)
	ref.Adopt(workingSession())

	got, err := exec.Apply(context.Background(), timeclock.ActionBreakStart)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateBreak, got.State)
	require.NoError(t, got.Validate())

	// Clocking out mid-break never reaches the wire.
	_, err = exec.Apply(context.Background(), timeclock.ActionClockOut)
	assert.ErrorIs(t, err, timeclock.ErrGuardViolation)
	sender.AssertNumberOfCalls(t, "Send", 1)

	got, err = exec.Apply(context.Background(), timeclock.ActionBreakEnd)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, got.State)
	require.NoError(t, got.Validate())
	require.Len(t, got.Breaks, 1)
	assert.False(t, got.Breaks[0].Open())
	assert.True(t, got.Breaks[0].EndAt.After(got.Breaks[0].StartAt))

	got, err = exec.Apply(context.Background(), timeclock.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateClosed, got.State)
	require.NoError(t, got.Validate())
	assert.Equal(t, got.TotalWorkSeconds-got.TotalBreakSeconds, got.NetWorkSeconds)
	assert.Empty(t, timeclock.Project(got.State).EnabledActions)

	sender.AssertExpectations(t)
	src.AssertExpectations(t)
	reporter.AssertExpectations(t)
}

func TestApplyConflictKeepsLocalState(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	sendErr := fmt.Errorf("POST /api/v1/timeclock/actions: %w", timeclock.ErrConflict)
	sender.On("Send", mock.Anything, timeclock.ActionClockIn).Return(timeclock.Session{}, sendErr).Once()
	reporter.On("Error", mock.AnythingOfType("string")).Once()

	exec, ref := newExecutor(src, sender, reporter)

	got, err := exec.Apply(context.Background(), timeclock.ActionClockIn)
	assert.ErrorIs(t, err, timeclock.ErrConflict)
	assert.Equal(t, timeclock.StateOff, got.State)
	assert.Equal(t, timeclock.StateOff, exec.Current().State)

	// The next refresh reconciles to the true remote state, e.g. the shift
	// already opened from another device.
	src.On("Status", mock.Anything).Return(workingSession(), nil).Once()
	ref.Refresh(context.Background())
	assert.Equal(t, timeclock.StateWorking, exec.Current().State)

	sender.AssertExpectations(t)
	reporter.AssertExpectations(t)
}

func TestApplyTransientFailureLeavesState(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	sendErr := fmt.Errorf("POST /api/v1/timeclock/actions: %w", timeclock.ErrUnavailable)
	sender.On("Send", mock.Anything, timeclock.ActionBreakStart).Return(timeclock.Session{}, sendErr).Once()
	reporter.On("Error", mock.AnythingOfType("string")).Once()

	exec, ref := newExecutor(src, sender, reporter)
	ref.Adopt(workingSession())

	got, err := exec.Apply(context.Background(), timeclock.ActionBreakStart)
	assert.ErrorIs(t, err, timeclock.ErrUnavailable)
	assert.Equal(t, timeclock.StateWorking, got.State)
	assert.Equal(t, timeclock.StateWorking, exec.Current().State)

	reporter.AssertExpectations(t)
}

func TestApplyAuthFailurePropagatesWithoutNotice(t *testing.T) {
	src := new(mocks.StatusSource)
	sender := new(mocks.ActionSender)
	reporter := new(mocks.Reporter)

	sendErr := fmt.Errorf("POST /api/v1/timeclock/actions: %w", timeclock.ErrAuth)
	sender.On("Send", mock.Anything, timeclock.ActionClockOut).Return(timeclock.Session{}, sendErr).Once()

	exec, ref := newExecutor(src, sender, reporter)
	ref.Adopt(workingSession())

	got, err := exec.Apply(context.Background(), timeclock.ActionClockOut)
	assert.ErrorIs(t, err, timeclock.ErrAuth)
	assert.Equal(t, timeclock.StateWorking, got.State)

	// Credential problems go to the auth layer, not the toast surface.
	reporter.AssertNumberOfCalls(t, "Error", 0)
	reporter.AssertNumberOfCalls(t, "Info", 0)
}
