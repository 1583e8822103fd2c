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

// packagePrices is the per-guest price of each event package in cents.
var packagePrices = map[string]int64{
	"apero":  1900,
	"buffet": 4500,
	"menu-3": 5900,
	"menu-5": 8900,
}

type eventEndpoint struct {
	store *Store
}

func (e *eventEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/events", e.create)
	g.POST("/events/search", e.search)
	g.POST("/events/:id/confirm", e.confirm)
	g.POST("/events/:id/cancel", e.cancel)
}

// create stores a booking inquiry. The price is always computed here from
// package and guest count; a client-sent price is ignored.
func (e *eventEndpoint) create(c *gin.Context) {
	var dto v1.EventBookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	m := EventBooking{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		ContactName:  dto.ContactName,
		ContactEmail: dto.ContactEmail,
		ContactPhone: dto.ContactPhone,
		Date:         dayString(dto.Date),
		GuestCount:   dto.GuestCount,
		RoomCode:     dto.RoomCode,
		PackageCode:  dto.PackageCode,
		PriceCents:   packagePrices[dto.PackageCode] * int64(dto.GuestCount),
		Status:       v1.EventInquiry,
		Notes:        dto.Notes,
	}
	if err := e.store.DB.Create(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, eventDTO(m))
}

func (e *eventEndpoint) search(c *gin.Context) {
	var req v1.EventSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q := e.store.DB.Model(&EventBooking{})
	if req.From != nil {
		q = q.Where("date >= ?", dayString(*req.From))
	}
	if req.To != nil {
		q = q.Where("date <= ?", dayString(*req.To))
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var rows []EventBooking
	if err := q.Order("date").Limit(pageSize(req.Take)).Offset(req.Skip).Find(&rows).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, eventDTO)
	c.JSON(http.StatusOK, common.SearchResponse[v1.EventBookingDTO]{
		Data:       out,
		Pagination: common.Pagination{Total: total},
	})
}

func (e *eventEndpoint) confirm(c *gin.Context) {
	m, ok := e.load(c)
	if !ok {
		return
	}
	if m.Status != v1.EventInquiry && m.Status != v1.EventOffered {
		respondError(c, http.StatusConflict, "not_confirmable", "booking is "+m.Status)
		return
	}

	m.Status = v1.EventConfirmed
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, eventDTO(m))
}

func (e *eventEndpoint) cancel(c *gin.Context) {
	m, ok := e.load(c)
	if !ok {
		return
	}

	m.Status = v1.EventCancelled
	if err := e.store.DB.Save(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, eventDTO(m))
}

func (e *eventEndpoint) load(c *gin.Context) (EventBooking, bool) {
	var m EventBooking
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "event booking")
		} else {
			respondError(c, http.StatusInternalServerError, "internal", err.Error())
		}
		return EventBooking{}, false
	}
	return m, true
}

func eventDTO(m EventBooking) v1.EventBookingDTO {
	return v1.EventBookingDTO{
		ID:           m.ID,
		Name:         m.Name,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Date:         dayValue(m.Date),
		GuestCount:   m.GuestCount,
		RoomCode:     m.RoomCode,
		PackageCode:  m.PackageCode,
		PriceCents:   m.PriceCents,
		Status:       m.Status,
		Notes:        m.Notes,
	}
}
