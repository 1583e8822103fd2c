package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

// Reservation statuses as the backend reports them.
const (
	ReservationRequested = "requested"
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no-show"
)

type ReservationDTO struct {
	ID         string          `json:"id,omitempty"`
	GuestName  string          `json:"guest_name" binding:"required"`
	GuestPhone string          `json:"guest_phone,omitempty"`
	PartySize  int             `json:"party_size" binding:"required,min=1"`
	Date       common.DateOnly `json:"date" binding:"required"`
	TimeSlot   string          `json:"time_slot" binding:"required"` // HH:mm
	TableCode  string          `json:"table_code,omitempty"`
	Status     string          `json:"status,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

type ReservationSearchRequest struct {
	Date   *common.DateOnly `json:"date,omitempty"`
	Status string           `json:"status,omitempty"`
	Take   int              `json:"take,omitempty"`
	Skip   int              `json:"skip,omitempty"`
}

type ReservationEndpoint struct {
	transport *Transport
}

func (e *ReservationEndpoint) Search(ctx context.Context, req ReservationSearchRequest) (*common.SearchResponse[ReservationDTO], error) {
	resp, err := e.transport.Post(ctx, "/api/v1/reservations/search", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.SearchResponse[ReservationDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (e *ReservationEndpoint) Create(ctx context.Context, dto ReservationDTO) (*ReservationDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/reservations", dto, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ReservationDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *ReservationEndpoint) Update(ctx context.Context, dto ReservationDTO) (*ReservationDTO, error) {
	resp, err := e.transport.Put(ctx, fmt.Sprintf("/api/v1/reservations/%s", dto.ID), dto)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ReservationDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *ReservationEndpoint) Cancel(ctx context.Context, id string) error {
	_, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/reservations/%s/cancel", id), nil, nil)
	return err
}
