package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/timeclock"
)

// SessionDTO is the wire shape of a timeclock session. Duration fields are
// computed server-side; clients render them as-is.
type SessionDTO struct {
	State             string     `json:"state"`
	ClockInAt         *time.Time `json:"clock_in_at,omitempty"`
	ClockOutAt        *time.Time `json:"clock_out_at,omitempty"`
	TotalWorkSeconds  int64      `json:"total_work_seconds"`
	TotalBreakSeconds int64      `json:"total_break_seconds"`
	NetWorkSeconds    int64      `json:"net_work_seconds"`
	Breaks            []BreakDTO `json:"breaks,omitempty"`
}

type BreakDTO struct {
	StartAt         time.Time  `json:"start_at"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
}

// ActionRequest submits one timeclock action.
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// Session converts the wire shape to the domain model.
func (d *SessionDTO) Session() timeclock.Session {
	sess := timeclock.Session{
		State:             timeclock.State(d.State),
		ClockInAt:         d.ClockInAt,
		ClockOutAt:        d.ClockOutAt,
		TotalWorkSeconds:  d.TotalWorkSeconds,
		TotalBreakSeconds: d.TotalBreakSeconds,
		NetWorkSeconds:    d.NetWorkSeconds,
	}
	for _, b := range d.Breaks {
		sess.Breaks = append(sess.Breaks, timeclock.Break{
			StartAt:         b.StartAt,
			EndAt:           b.EndAt,
			DurationSeconds: b.DurationSeconds,
		})
	}
	return sess
}

// NewSessionDTO converts a domain session to its wire shape.
func NewSessionDTO(sess timeclock.Session) *SessionDTO {
	dto := &SessionDTO{
		State:             string(sess.State),
		ClockInAt:         sess.ClockInAt,
		ClockOutAt:        sess.ClockOutAt,
		TotalWorkSeconds:  sess.TotalWorkSeconds,
		TotalBreakSeconds: sess.TotalBreakSeconds,
		NetWorkSeconds:    sess.NetWorkSeconds,
	}
	for _, b := range sess.Breaks {
		dto.Breaks = append(dto.Breaks, BreakDTO{
			StartAt:         b.StartAt,
			EndAt:           b.EndAt,
			DurationSeconds: b.DurationSeconds,
		})
	}
	return dto
}

// TimeclockEndpoint talks to the timeclock resource. It satisfies
// timeclock.StatusSource and timeclock.ActionSender, translating HTTP
// failures into that package's error taxonomy.
type TimeclockEndpoint struct {
	transport *Transport
}

var (
	_ timeclock.StatusSource = (*TimeclockEndpoint)(nil)
	_ timeclock.ActionSender = (*TimeclockEndpoint)(nil)
)

// Status fetches the caller's current session. A null data payload reads
// as no session, state OFF.
func (e *TimeclockEndpoint) Status(ctx context.Context) (timeclock.Session, error) {
	resp, err := e.transport.Get(ctx, "/api/v1/timeclock/status", nil)
	if err != nil {
		return timeclock.NoSession(), classify(err)
	}

	var result common.StatusAPIResponse[*SessionDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return timeclock.NoSession(), fmt.Errorf("decoding status response: %w", err)
	}
	if result.Data == nil {
		return timeclock.NoSession(), nil
	}
	return result.Data.Session(), nil
}

// Send submits one timeclock action and returns the updated session.
func (e *TimeclockEndpoint) Send(ctx context.Context, action timeclock.Action) (timeclock.Session, error) {
	payload := ActionRequest{Action: string(action)}

	resp, err := e.transport.Post(ctx, "/api/v1/timeclock/actions", payload, nil)
	if err != nil {
		return timeclock.NoSession(), classify(err)
	}

	var result common.StatusAPIResponse[*SessionDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return timeclock.NoSession(), fmt.Errorf("decoding action response: %w", err)
	}
	if result.Data == nil {
		return timeclock.NoSession(), nil
	}
	return result.Data.Session(), nil
}

// classify maps transport failures onto the timeclock error taxonomy,
// keeping the underlying HTTP error in the chain for logs and inspection.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsAuth(err):
		return fmt.Errorf("%w: %w", timeclock.ErrAuth, err)
	case IsConflict(err), IsValidation(err):
		return fmt.Errorf("%w: %w", timeclock.ErrConflict, err)
	case IsUnavailable(err):
		return fmt.Errorf("%w: %w", timeclock.ErrUnavailable, err)
	}
	return err
}
