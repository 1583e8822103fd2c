package devserver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/utils"
)

// newStack wires the full client stack, refresher and executor included,
// against the fixture.
func newStack(t *testing.T) (*Server, *timeclock.Executor, *timeclock.Refresher) {
	t.Helper()
	srv, client := newFixture(t)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ref := timeclock.NewRefresher(client.Timeclock, log, timeclock.RefresherOptions{})
	exec := timeclock.NewExecutor(client.Timeclock, ref, nil, log)
	return srv, exec, ref
}

// TestFullShiftThroughExecutor drives a whole working day through the real
// SDK against the fixture: clock in, break, refused clock-out during the
// break, break end, clock out.
func TestFullShiftThroughExecutor(t *testing.T) {
	srv, exec, ref := newStack(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, utils.VenueTZ)
	srv.Now = func() time.Time { return now }

	// before the day starts the projection offers clock-in only
	ref.Refresh(ctx)
	p := timeclock.Project(exec.Current().State)
	assert.Equal(t, []timeclock.Action{timeclock.ActionClockIn}, p.EnabledActions)

	sess, err := exec.Apply(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, sess.State)
	p = timeclock.Project(sess.State)
	assert.ElementsMatch(t,
		[]timeclock.Action{timeclock.ActionBreakStart, timeclock.ActionClockOut},
		p.EnabledActions)

	now = now.Add(3 * time.Hour)
	sess, err = exec.Apply(ctx, timeclock.ActionBreakStart)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateBreak, sess.State)
	p = timeclock.Project(sess.State)
	assert.Equal(t, []timeclock.Action{timeclock.ActionBreakEnd}, p.EnabledActions)
	assert.Contains(t, p.Warnings, timeclock.WarnBreakBeforeClockOut)

	// the guard fires locally; state stays break
	_, err = exec.Apply(ctx, timeclock.ActionClockOut)
	require.ErrorIs(t, err, timeclock.ErrGuardViolation)
	assert.Equal(t, timeclock.StateBreak, exec.Current().State)

	now = now.Add(30 * time.Minute)
	sess, err = exec.Apply(ctx, timeclock.ActionBreakEnd)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, sess.State)

	now = now.Add(4*time.Hour + 30*time.Minute)
	sess, err = exec.Apply(ctx, timeclock.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateClosed, sess.State)
	assert.Empty(t, timeclock.Project(sess.State).EnabledActions)
	require.NoError(t, sess.Validate())
	assert.Equal(t, sess.NetWorkSeconds, sess.TotalWorkSeconds-sess.TotalBreakSeconds)

	require.Len(t, sess.Breaks, 1)
	require.NotNil(t, sess.Breaks[0].EndAt)
	assert.True(t, sess.Breaks[0].EndAt.After(sess.Breaks[0].StartAt))

	// the day is over, a second clock-in is refused locally
	_, err = exec.Apply(ctx, timeclock.ActionClockIn)
	require.ErrorIs(t, err, timeclock.ErrIllegalTransition)
}

// TestClockInConflictFromAnotherDevice is the divergence case: device B
// still believes the day is off while device A already opened the shift.
// The server refuses, B's snapshot stays off, and the next refresh adopts
// the true state.
func TestClockInConflictFromAnotherDevice(t *testing.T) {
	_, client := newFixture(t)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	// device A opens the shift
	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)

	// device B never refreshed; its local view is off
	refB := timeclock.NewRefresher(client.Timeclock, log, timeclock.RefresherOptions{})
	execB := timeclock.NewExecutor(client.Timeclock, refB, nil, log)
	require.Equal(t, timeclock.StateOff, execB.Current().State)

	_, err = execB.Apply(ctx, timeclock.ActionClockIn)
	require.ErrorIs(t, err, timeclock.ErrConflict)
	assert.Equal(t, timeclock.StateOff, execB.Current().State, "a refused action must not move the snapshot")

	// the next refresh reconciles with the authoritative state
	sess := refB.Refresh(ctx)
	assert.Equal(t, timeclock.StateWorking, sess.State)
}
