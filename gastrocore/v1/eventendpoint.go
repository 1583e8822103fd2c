package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

// Event booking statuses.
const (
	EventInquiry   = "inquiry"
	EventOffered   = "offered"
	EventConfirmed = "confirmed"
	EventCancelled = "cancelled"
)

// EventBookingDTO is the result of the multi-step event booking flow:
// contact, date and room, guest count and package, assembled client-side
// and submitted as one record.
type EventBookingDTO struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name" binding:"required"`
	ContactName  string          `json:"contact_name" binding:"required"`
	ContactEmail string          `json:"contact_email" binding:"required,email"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	Date         common.DateOnly `json:"date" binding:"required"`
	GuestCount   int             `json:"guest_count" binding:"required,min=1"`
	RoomCode     string          `json:"room_code,omitempty"`
	PackageCode  string          `json:"package_code,omitempty"`
	PriceCents   int64           `json:"price_cents,omitempty"` // server-priced
	Status       string          `json:"status,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

type EventSearchRequest struct {
	From   *common.DateOnly `json:"from,omitempty"`
	To     *common.DateOnly `json:"to,omitempty"`
	Status string           `json:"status,omitempty"`
	Take   int              `json:"take,omitempty"`
	Skip   int              `json:"skip,omitempty"`
}

type EventEndpoint struct {
	transport *Transport
}

func (e *EventEndpoint) Search(ctx context.Context, req EventSearchRequest) (*common.SearchResponse[EventBookingDTO], error) {
	resp, err := e.transport.Post(ctx, "/api/v1/events/search", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.SearchResponse[EventBookingDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create submits a new booking inquiry. Pricing comes back server-computed.
func (e *EventEndpoint) Create(ctx context.Context, dto EventBookingDTO) (*EventBookingDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/events", dto, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*EventBookingDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *EventEndpoint) Confirm(ctx context.Context, id string) (*EventBookingDTO, error) {
	resp, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/events/%s/confirm", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*EventBookingDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *EventEndpoint) Cancel(ctx context.Context, id string) error {
	_, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/events/%s/cancel", id), nil, nil)
	return err
}
