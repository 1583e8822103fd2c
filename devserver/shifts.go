package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/utils"
)

type shiftEndpoint struct {
	store *Store
}

func (e *shiftEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/shifts", e.create)
	g.POST("/shifts/search", e.search)
	g.PUT("/shifts/:id", e.update)
	g.DELETE("/shifts/:id", e.remove)
}

func (e *shiftEndpoint) create(c *gin.Context) {
	var dto v1.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	m := Shift{
		ID:      uuid.NewString(),
		StaffID: dto.StaffID,
		Date:    dayString(dto.Date),
		Start:   dto.Start,
		End:     dto.End,
		Role:    dto.Role,
		Notes:   dto.Notes,
	}
	if err := e.store.DB.Create(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, shiftDTO(m))
}

func (e *shiftEndpoint) search(c *gin.Context) {
	var req v1.ShiftSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q := e.store.DB.Model(&Shift{})
	if req.StaffID != "" {
		q = q.Where("staff_id = ?", req.StaffID)
	}
	if req.From != nil {
		q = q.Where("date >= ?", dayString(*req.From))
	}
	if req.To != nil {
		q = q.Where("date <= ?", dayString(*req.To))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var rows []Shift
	if err := q.Order("date, start").Limit(pageSize(req.Take)).Offset(req.Skip).Find(&rows).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, shiftDTO)
	c.JSON(http.StatusOK, common.SearchResponse[v1.ShiftDTO]{
		Data:       out,
		Pagination: common.Pagination{Total: total},
	})
}

func (e *shiftEndpoint) update(c *gin.Context) {
	var dto v1.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	var m Shift
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "shift")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	m.StaffID = dto.StaffID
	m.Date = dayString(dto.Date)
	m.Start = dto.Start
	m.End = dto.End
	m.Role = dto.Role
	m.Notes = dto.Notes
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, shiftDTO(m))
}

func (e *shiftEndpoint) remove(c *gin.Context) {
	res := e.store.DB.Delete(&Shift{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		respondError(c, http.StatusInternalServerError, "internal", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		respondNotFound(c, "shift")
		return
	}
	respondData(c, http.StatusOK, nil)
}

func shiftDTO(m Shift) v1.ShiftDTO {
	return v1.ShiftDTO{
		ID:      m.ID,
		StaffID: m.StaffID,
		Date:    dayValue(m.Date),
		Start:   m.Start,
		End:     m.End,
		Role:    m.Role,
		Notes:   m.Notes,
	}
}
