package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/timeclock"
	"github.com/carlsburger/gastrocore/utils"
)

// timeclockEndpoint reproduces the backend's timeclock contract: the
// transition table is enforced server-side and every duration field is
// computed here, never accepted from the client.
type timeclockEndpoint struct {
	store *Store
	now   func() time.Time
}

func (e *timeclockEndpoint) Register(g *gin.RouterGroup) {
	g.GET("/timeclock/status", e.status)
	g.POST("/timeclock/actions", e.act)
}

// status returns the caller's session for the current business day, or a
// body without data when no shift has started yet.
func (e *timeclockEndpoint) status(c *gin.Context) {
	sess, err := e.todaysSession(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondData(c, http.StatusOK, nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, e.sessionDTO(sess))
}

func (e *timeclockEndpoint) act(c *gin.Context) {
	var req v1.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	action, err := timeclock.ParseAction(req.Action)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	sess, err := e.todaysSession(c)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	state := timeclock.StateOff
	if sess != nil {
		state = timeclock.State(sess.State)
	}

	next, terr := timeclock.NextState(state, action)
	if terr != nil {
		status, code, msg := refusal(state, action, terr)
		respondError(c, status, code, msg)
		return
	}

	now := e.now()
	switch action {
	case timeclock.ActionClockIn:
		sess = &Session{
			ID:          uuid.NewString(),
			StaffID:     staffID(c),
			BusinessDay: e.businessDay(),
			State:       string(next),
			ClockInAt:   now,
		}
		err = e.store.DB.Create(sess).Error

	case timeclock.ActionBreakStart:
		err = e.store.DB.Transaction(func(tx *gorm.DB) error {
			brk := &SessionBreak{ID: uuid.NewString(), SessionID: sess.ID, StartAt: now}
			if err := tx.Create(brk).Error; err != nil {
				return err
			}
			return tx.Model(sess).Update("state", string(next)).Error
		})

	case timeclock.ActionBreakEnd:
		open := openBreak(sess)
		if open == nil {
			respondError(c, http.StatusConflict, "no_active_break", "no break to end")
			return
		}
		err = e.store.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(open).Update("end_at", now).Error; err != nil {
				return err
			}
			return tx.Model(sess).Update("state", string(next)).Error
		})

	case timeclock.ActionClockOut:
		err = e.store.DB.Model(sess).Updates(map[string]any{
			"state":        string(next),
			"clock_out_at": now,
		}).Error
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	fresh, err := e.todaysSession(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, e.sessionDTO(fresh))
}

// refusal maps a refused transition onto the backend's conflict codes. The
// break guard is the one 422; everything else is state divergence, 409.
func refusal(state timeclock.State, action timeclock.Action, err error) (int, string, string) {
	if errors.Is(err, timeclock.ErrGuardViolation) {
		return http.StatusUnprocessableEntity, "guard_violation", "end the open break before clocking out"
	}
	switch action {
	case timeclock.ActionClockIn:
		if state == timeclock.StateClosed {
			return http.StatusConflict, "shift_closed", "today's shift is already closed"
		}
		return http.StatusConflict, "already_clocked_in", "a shift is already running"
	case timeclock.ActionBreakStart:
		if state == timeclock.StateBreak {
			return http.StatusConflict, "break_active", "a break is already running"
		}
		return http.StatusConflict, "not_clocked_in", "clock in before starting a break"
	case timeclock.ActionBreakEnd:
		return http.StatusConflict, "no_active_break", "no break to end"
	}
	if state == timeclock.StateClosed {
		return http.StatusConflict, "shift_closed", "today's shift is already closed"
	}
	return http.StatusConflict, "not_clocked_in", "no shift to close"
}

func (e *timeclockEndpoint) businessDay() string {
	return e.now().In(utils.VenueTZ).Format("2006-01-02")
}

func (e *timeclockEndpoint) todaysSession(c *gin.Context) (*Session, error) {
	var sess Session
	err := e.store.DB.
		Preload("Breaks", func(db *gorm.DB) *gorm.DB { return db.Order("start_at") }).
		Where("staff_id = ? AND business_day = ?", staffID(c), e.businessDay()).
		First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func openBreak(sess *Session) *SessionBreak {
	return utils.Find(sess.Breaks, func(b SessionBreak) bool { return b.EndAt == nil })
}

// sessionDTO computes the wire shape. Durations for an open session run up
// to the current instant; a break contributes to the total while open but
// only reports its own duration once closed.
func (e *timeclockEndpoint) sessionDTO(sess *Session) *v1.SessionDTO {
	now := e.now()

	end := now
	if sess.ClockOutAt != nil {
		end = *sess.ClockOutAt
	}
	work := int64(end.Sub(sess.ClockInAt).Seconds())
	if work < 0 {
		work = 0
	}

	clockIn := sess.ClockInAt
	dto := &v1.SessionDTO{
		State:      sess.State,
		ClockInAt:  &clockIn,
		ClockOutAt: sess.ClockOutAt,
	}

	var breakTotal int64
	for i := range sess.Breaks {
		b := sess.Breaks[i]
		var dur int64
		if b.EndAt != nil {
			dur = int64(b.EndAt.Sub(b.StartAt).Seconds())
			breakTotal += dur
		} else {
			breakTotal += int64(now.Sub(b.StartAt).Seconds())
		}
		dto.Breaks = append(dto.Breaks, v1.BreakDTO{
			StartAt:         b.StartAt,
			EndAt:           b.EndAt,
			DurationSeconds: dur,
		})
	}
	if breakTotal < 0 {
		breakTotal = 0
	}
	if breakTotal > work {
		breakTotal = work
	}

	dto.TotalWorkSeconds = work
	dto.TotalBreakSeconds = breakTotal
	dto.NetWorkSeconds = work - breakTotal
	return dto
}
