package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

// Import batch statuses.
const (
	ImportReceived = "received"
	ImportMatched  = "matched"
	ImportFailed   = "failed"
)

// ImportRecordDTO is one POS ticket line submitted for matching.
type ImportRecordDTO struct {
	TicketNo    string          `json:"ticket_no" binding:"required"`
	Register    string          `json:"register" binding:"required"`
	BusinessDay common.DateOnly `json:"business_day" binding:"required"`
	BookedAt    time.Time       `json:"booked_at"`
	GrossCents  int64           `json:"gross_cents"`
	NetCents    int64           `json:"net_cents"`
	PaymentKind string          `json:"payment_kind,omitempty"`
}

// ImportBatchDTO is the server's view of one submitted batch.
type ImportBatchDTO struct {
	ID             string    `json:"id"`
	Source         string    `json:"source"`
	Status         string    `json:"status"`
	RecordCount    int       `json:"record_count"`
	DuplicateCount int       `json:"duplicate_count"`
	CreatedAt      time.Time `json:"created_at"`
	Error          string    `json:"error,omitempty"`
}

type ImportSubmitRequest struct {
	Source  string            `json:"source" binding:"required"`
	Records []ImportRecordDTO `json:"records" binding:"required,min=1"`
}

type ImportSearchRequest struct {
	Status string `json:"status,omitempty"`
	Take   int    `json:"take,omitempty"`
	Skip   int    `json:"skip,omitempty"`
}

// ImportEndpoint covers POS import submission and monitoring.
type ImportEndpoint struct {
	transport *Transport
}

// Submit sends parsed POS records as one batch.
func (e *ImportEndpoint) Submit(ctx context.Context, req ImportSubmitRequest) (*ImportBatchDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/pos-imports", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ImportBatchDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Upload sends a raw POS export file for server-side parsing.
func (e *ImportEndpoint) Upload(ctx context.Context, filename string, r io.Reader) (*ImportBatchDTO, error) {
	resp, err := e.transport.PostMultipart(ctx, "/api/v1/pos-imports/upload", "file", filename, r)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ImportBatchDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *ImportEndpoint) Search(ctx context.Context, req ImportSearchRequest) (*common.SearchResponse[ImportBatchDTO], error) {
	resp, err := e.transport.Post(ctx, "/api/v1/pos-imports/search", req, nil)
	if err != nil {
		return nil, err
	}
	var result common.SearchResponse[ImportBatchDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (e *ImportEndpoint) Get(ctx context.Context, id string) (*ImportBatchDTO, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/api/v1/pos-imports/%s", id), nil)
	if err != nil {
		return nil, err
	}
	var result common.StatusAPIResponse[*ImportBatchDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
