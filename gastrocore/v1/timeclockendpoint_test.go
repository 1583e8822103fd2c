package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlsburger/gastrocore/timeclock"
)

func timeclockServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, StaticToken("test-token"))
}

func TestStatusDecodesSession(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	breakStart := clockIn.Add(3 * time.Hour)

	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/timeclock/status", r.URL.Path)

		dto := &SessionDTO{
			State:            string(timeclock.StateBreak),
			ClockInAt:        &clockIn,
			TotalWorkSeconds: 3 * 3600,
			NetWorkSeconds:   3 * 3600,
			Breaks:           []BreakDTO{{StartAt: breakStart}},
		}
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": dto})
	})

	sess, err := client.Timeclock.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateBreak, sess.State)
	require.NotNil(t, sess.ClockInAt)
	assert.True(t, clockIn.Equal(*sess.ClockInAt))
	require.Len(t, sess.Breaks, 1)
	assert.True(t, sess.Breaks[0].Open())
	require.NoError(t, sess.Validate())
}

func TestStatusNullDataReadsAsNoSession(t *testing.T) {
	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"data":null}`))
	})

	sess, err := client.Timeclock.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timeclock.NoSession(), sess)
}

func TestStatusClassifiesAuthFailure(t *testing.T) {
	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":false,"error":{"code":"token_expired","message":"token expired"}}`))
	})

	_, err := client.Timeclock.Status(context.Background())
	assert.ErrorIs(t, err, timeclock.ErrAuth)
}

func TestStatusClassifiesServerFailure(t *testing.T) {
	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Timeclock.Status(context.Background())
	assert.ErrorIs(t, err, timeclock.ErrUnavailable)
}

func TestStatusClassifiesNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, nil)

	_, err := client.Timeclock.Status(context.Background())
	assert.ErrorIs(t, err, timeclock.ErrUnavailable)
}

func TestSendSubmitsAction(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/timeclock/actions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req ActionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "clock-in", req.Action)

		dto := &SessionDTO{State: string(timeclock.StateWorking), ClockInAt: &clockIn}
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": dto})
	})

	sess, err := client.Timeclock.Send(context.Background(), timeclock.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StateWorking, sess.State)
}

func TestSendClassifiesConflict(t *testing.T) {
	client := timeclockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":false,"error":{"code":"already_clocked_in","message":"an open session exists"}}`))
	})

	_, err := client.Timeclock.Send(context.Background(), timeclock.ActionClockIn)
	assert.ErrorIs(t, err, timeclock.ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "already_clocked_in", apiErr.Code)
}

func TestSessionDTORoundTrip(t *testing.T) {
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := in.Add(4 * time.Hour)
	sess := timeclock.Session{
		State:             timeclock.StateWorking,
		ClockInAt:         &in,
		TotalWorkSeconds:  4 * 3600,
		TotalBreakSeconds: 900,
		NetWorkSeconds:    4*3600 - 900,
		Breaks:            []timeclock.Break{{StartAt: in.Add(2 * time.Hour), EndAt: &end, DurationSeconds: 900}},
	}

	assert.Equal(t, sess, NewSessionDTO(sess).Session())
}
