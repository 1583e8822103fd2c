package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

type ShiftDTO struct {
	ID      string          `json:"id,omitempty"`
	StaffID string          `json:"staff_id" binding:"required"`
	Date    common.DateOnly `json:"date" binding:"required"`
	Start   string          `json:"start" binding:"required"` // HH:mm
	End     string          `json:"end" binding:"required"`   // HH:mm
	Role    string          `json:"role,omitempty"`           // service, kitchen, bar
	Notes   string          `json:"notes,omitempty"`
}

type ShiftSearchRequest struct {
	StaffID string           `json:"staff_id,omitempty"`
	From    *common.DateOnly `json:"from,omitempty"`
	To      *common.DateOnly `json:"to,omitempty"`
	Take    int              `json:"take,omitempty"`
	Skip    int              `json:"skip,omitempty"`
}

// ShiftEndpoint covers the staff scheduling resource.
type ShiftEndpoint struct {
	transport *Transport
}

func (e *ShiftEndpoint) Search(ctx context.Context, req ShiftSearchRequest) (*common.SearchResponse[ShiftDTO], error) {
	resp, err := e.transport.Post(ctx, "/api/v1/shifts/search", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.SearchResponse[ShiftDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (e *ShiftEndpoint) Create(ctx context.Context, dto ShiftDTO) (*ShiftDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/shifts", dto, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ShiftDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *ShiftEndpoint) Update(ctx context.Context, dto ShiftDTO) (*ShiftDTO, error) {
	resp, err := e.transport.Put(ctx, fmt.Sprintf("/api/v1/shifts/%s", dto.ID), dto)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ShiftDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *ShiftEndpoint) Delete(ctx context.Context, id string) error {
	_, err := e.transport.Delete(ctx, fmt.Sprintf("/api/v1/shifts/%s", id))
	return err
}
