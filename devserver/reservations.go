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

type reservationEndpoint struct {
	store *Store
}

func (e *reservationEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/reservations", e.create)
	g.POST("/reservations/search", e.search)
	g.PUT("/reservations/:id", e.update)
	g.POST("/reservations/:id/cancel", e.cancel)
}

func (e *reservationEndpoint) create(c *gin.Context) {
	var dto v1.ReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	m := Reservation{
		ID:         uuid.NewString(),
		GuestName:  dto.GuestName,
		GuestPhone: dto.GuestPhone,
		PartySize:  dto.PartySize,
		Date:       dayString(dto.Date),
		TimeSlot:   dto.TimeSlot,
		TableCode:  dto.TableCode,
		Status:     v1.ReservationRequested,
		Notes:      dto.Notes,
	}
	if err := e.store.DB.Create(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, reservationDTO(m))
}

func (e *reservationEndpoint) search(c *gin.Context) {
	var req v1.ReservationSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q := e.store.DB.Model(&Reservation{})
	if req.Date != nil {
		q = q.Where("date = ?", dayString(*req.Date))
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var rows []Reservation
	if err := q.Order("date, time_slot").Limit(pageSize(req.Take)).Offset(req.Skip).Find(&rows).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, reservationDTO)
	c.JSON(http.StatusOK, common.SearchResponse[v1.ReservationDTO]{
		Data:       out,
		Pagination: common.Pagination{Total: total},
	})
}

func (e *reservationEndpoint) update(c *gin.Context) {
	var dto v1.ReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	var m Reservation
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "reservation")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	m.GuestName = dto.GuestName
	m.GuestPhone = dto.GuestPhone
	m.PartySize = dto.PartySize
	m.Date = dayString(dto.Date)
	m.TimeSlot = dto.TimeSlot
	m.TableCode = dto.TableCode
	m.Notes = dto.Notes
	if dto.Status != "" {
		m.Status = dto.Status
	}
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, reservationDTO(m))
}

func (e *reservationEndpoint) cancel(c *gin.Context) {
	var m Reservation
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "reservation")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	m.Status = v1.ReservationCancelled
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, reservationDTO(m))
}

func reservationDTO(m Reservation) v1.ReservationDTO {
	return v1.ReservationDTO{
		ID:         m.ID,
		GuestName:  m.GuestName,
		GuestPhone: m.GuestPhone,
		PartySize:  m.PartySize,
		Date:       dayValue(m.Date),
		TimeSlot:   m.TimeSlot,
		TableCode:  m.TableCode,
		Status:     m.Status,
		Notes:      m.Notes,
	}
}
