package v1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

// Absence request statuses.
const (
	AbsencePending   = "pending"
	AbsenceApproved  = "approved"
	AbsenceRejected  = "rejected"
	AbsenceWithdrawn = "withdrawn"
)

// Absence kinds.
const (
	AbsenceVacation = "vacation"
	AbsenceSick     = "sick"
	AbsenceUnpaid   = "unpaid"
)

type AbsenceDTO struct {
	ID        string          `json:"id,omitempty"`
	StaffID   string          `json:"staff_id,omitempty"`
	Kind      string          `json:"kind" binding:"required,oneof=vacation sick unpaid"`
	From      common.DateOnly `json:"from" binding:"required"`
	To        common.DateOnly `json:"to" binding:"required"`
	Reason    string          `json:"reason,omitempty"`
	Status    string          `json:"status,omitempty"`
	DecidedBy string          `json:"decided_by,omitempty"`
	Decision  string          `json:"decision,omitempty"`
}

type AbsenceSearchRequest struct {
	StaffID string `json:"staff_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Take    int    `json:"take,omitempty"`
	Skip    int    `json:"skip,omitempty"`
}

type AbsenceDecisionRequest struct {
	Comment string `json:"comment,omitempty"`
}

type AbsenceEndpoint struct {
	transport *Transport
}

func (e *AbsenceEndpoint) Search(ctx context.Context, req AbsenceSearchRequest) (*common.SearchResponse[AbsenceDTO], error) {
	resp, err := e.transport.Post(ctx, "/api/v1/absences/search", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.SearchResponse[AbsenceDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Submit files a new absence request for the caller.
func (e *AbsenceEndpoint) Submit(ctx context.Context, dto AbsenceDTO) (*AbsenceDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/absences", dto, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*AbsenceDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *AbsenceEndpoint) Approve(ctx context.Context, id string, req AbsenceDecisionRequest) (*AbsenceDTO, error) {
	return e.decide(ctx, id, "approve", req)
}

func (e *AbsenceEndpoint) Reject(ctx context.Context, id string, req AbsenceDecisionRequest) (*AbsenceDTO, error) {
	return e.decide(ctx, id, "reject", req)
}

// Withdraw retracts the caller's own pending request.
func (e *AbsenceEndpoint) Withdraw(ctx context.Context, id string) error {
	_, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/absences/%s/withdraw", id), nil, nil)
	return err
}

func (e *AbsenceEndpoint) decide(ctx context.Context, id, verdict string, req AbsenceDecisionRequest) (*AbsenceDTO, error) {
	resp, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/absences/%s/%s", id, verdict), req, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*AbsenceDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
