package devserver

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/security"
	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/utils"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("gastrocore fixture signing secret"))

// newFixture boots an in-memory fixture server and a client authenticated
// as one staff member.
func newFixture(t *testing.T) (*Server, *v1.Client) {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(store, testSecret, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token, err := security.CreateStaffToken(&security.StaffMember{
		Id: 7, Name: "Mara", Role: security.RoleService, Venue: "carlsburg",
	}, testSecret, 3600)
	require.NoError(t, err)

	return srv, v1.NewClient(ts.URL, v1.StaticToken(token))
}

func TestStatusWithoutSessionReadsOff(t *testing.T) {
	_, client := newFixture(t)

	sess, err := client.Timeclock.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateOff, sess.State)
	assert.Nil(t, sess.ClockInAt)
}

func TestClockInOpensWorkingSession(t *testing.T) {
	srv, client := newFixture(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, utils.VenueTZ)
	srv.Now = func() time.Time { return now }

	sess, err := client.Timeclock.Send(context.Background(), timeclock.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, sess.State)
	require.NotNil(t, sess.ClockInAt)
	assert.True(t, sess.ClockInAt.Equal(now))
	require.NoError(t, sess.Validate())
}

func TestDoubleClockInConflicts(t *testing.T) {
	_, client := newFixture(t)
	ctx := context.Background()

	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)

	_, err = client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.Error(t, err)
	assert.ErrorIs(t, err, timeclock.ErrConflict)

	var apiErr *v1.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "already_clocked_in", apiErr.Code)
}

func TestClockOutDuringBreakIsRefusedWithGuardCode(t *testing.T) {
	_, client := newFixture(t)
	ctx := context.Background()

	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)
	_, err = client.Timeclock.Send(ctx, timeclock.ActionBreakStart)
	require.NoError(t, err)

	_, err = client.Timeclock.Send(ctx, timeclock.ActionClockOut)
	require.Error(t, err)

	var apiErr *v1.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "guard_violation", apiErr.Code)

	sess, err := client.Timeclock.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateBreak, sess.State)
}

func TestBreakEndWithoutBreakConflicts(t *testing.T) {
	_, client := newFixture(t)
	ctx := context.Background()

	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)

	_, err = client.Timeclock.Send(ctx, timeclock.ActionBreakEnd)
	require.Error(t, err)

	var apiErr *v1.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no_active_break", apiErr.Code)
}

func TestDurationsAreComputedServerSide(t *testing.T) {
	srv, client := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, utils.VenueTZ)
	srv.Now = func() time.Time { return now }

	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)

	now = now.Add(3 * time.Hour) // 12:00 break
	_, err = client.Timeclock.Send(ctx, timeclock.ActionBreakStart)
	require.NoError(t, err)

	now = now.Add(30 * time.Minute) // 12:30 back
	_, err = client.Timeclock.Send(ctx, timeclock.ActionBreakEnd)
	require.NoError(t, err)

	now = now.Add(4*time.Hour + 30*time.Minute) // 17:00 off
	sess, err := client.Timeclock.Send(ctx, timeclock.ActionClockOut)
	require.NoError(t, err)

	assert.Equal(t, timeclock.StateClosed, sess.State)
	assert.Equal(t, int64(8*3600), sess.TotalWorkSeconds)
	assert.Equal(t, int64(30*60), sess.TotalBreakSeconds)
	assert.Equal(t, int64(8*3600-30*60), sess.NetWorkSeconds)
	require.NoError(t, sess.Validate())

	require.Len(t, sess.Breaks, 1)
	brk := sess.Breaks[0]
	require.NotNil(t, brk.EndAt)
	assert.True(t, brk.EndAt.After(brk.StartAt))
	assert.Equal(t, int64(30*60), brk.DurationSeconds)
}

func TestClosedSessionIsTerminal(t *testing.T) {
	_, client := newFixture(t)
	ctx := context.Background()

	_, err := client.Timeclock.Send(ctx, timeclock.ActionClockIn)
	require.NoError(t, err)
	_, err = client.Timeclock.Send(ctx, timeclock.ActionClockOut)
	require.NoError(t, err)

	for _, action := range timeclock.Actions() {
		_, err := client.Timeclock.Send(ctx, action)
		require.Error(t, err, "action %s must be refused after clock-out", action)
	}
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	srv, _ := newFixture(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	anon := v1.NewClient(ts.URL, nil)
	_, err := anon.Timeclock.Status(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, timeclock.ErrAuth))
}
