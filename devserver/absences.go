package devserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/utils"
)

type absenceEndpoint struct {
	store *Store
}

func (e *absenceEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/absences", e.submit)
	g.POST("/absences/search", e.search)
	g.POST("/absences/:id/approve", e.decide(v1.AbsenceApproved))
	g.POST("/absences/:id/reject", e.decide(v1.AbsenceRejected))
	g.POST("/absences/:id/withdraw", e.withdraw)
}

// submit files an absence for the caller; the staff id always comes from
// the token, never from the payload.
func (e *absenceEndpoint) submit(c *gin.Context) {
	var dto v1.AbsenceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}
	if dto.To.Before(dto.From.Time) {
		respondError(c, http.StatusBadRequest, "validation_failed", "Field 'to' must not be before 'from'")
		return
	}

	m := Absence{
		ID:      uuid.NewString(),
		StaffID: staffID(c),
		Kind:    dto.Kind,
		FromDay: dayString(dto.From),
		ToDay:   dayString(dto.To),
		Reason:  dto.Reason,
		Status:  v1.AbsencePending,
	}
	if err := e.store.DB.Create(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, absenceDTO(m))
}

func (e *absenceEndpoint) search(c *gin.Context) {
	var req v1.AbsenceSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q := e.store.DB.Model(&Absence{})
	if req.StaffID != "" {
		q = q.Where("staff_id = ?", req.StaffID)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var rows []Absence
	if err := q.Order("from_day").Limit(pageSize(req.Take)).Offset(req.Skip).Find(&rows).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, absenceDTO)
	c.JSON(http.StatusOK, common.SearchResponse[v1.AbsenceDTO]{
		Data:       out,
		Pagination: common.Pagination{Total: total},
	})
}

// decide approves or rejects a pending request. Manager only.
func (e *absenceEndpoint) decide(verdict string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireManager(c) {
			return
		}
		// The decision comment is optional, so an empty body is fine.
		var req v1.AbsenceDecisionRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBindingError(c, err)
			return
		}

		m, ok := e.load(c)
		if !ok {
			return
		}
		if m.Status != v1.AbsencePending {
			respondError(c, http.StatusConflict, "not_pending", "absence request already decided")
			return
		}

		m.Status = verdict
		m.DecidedBy = currentStaff(c).Name
		m.Decision = req.Comment
		if err := e.store.DB.Save(&m).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		respondData(c, http.StatusOK, absenceDTO(m))
	}
}

// withdraw retracts the caller's own pending request.
func (e *absenceEndpoint) withdraw(c *gin.Context) {
	m, ok := e.load(c)
	if !ok {
		return
	}
	if m.StaffID != staffID(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not your absence request")
		return
	}
	if m.Status != v1.AbsencePending {
		respondError(c, http.StatusConflict, "not_pending", "absence request already decided")
		return
	}

	m.Status = v1.AbsenceWithdrawn
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, absenceDTO(m))
}

func (e *absenceEndpoint) load(c *gin.Context) (Absence, bool) {
	var m Absence
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "absence request")
		} else {
			respondError(c, http.StatusInternalServerError, "internal", err.Error())
		}
		return Absence{}, false
	}
	return m, true
}

func absenceDTO(m Absence) v1.AbsenceDTO {
	return v1.AbsenceDTO{
		ID:        m.ID,
		StaffID:   m.StaffID,
		Kind:      m.Kind,
		From:      dayValue(m.FromDay),
		To:        dayValue(m.ToDay),
		Reason:    m.Reason,
		Status:    m.Status,
		DecidedBy: m.DecidedBy,
		Decision:  m.Decision,
	}
}
