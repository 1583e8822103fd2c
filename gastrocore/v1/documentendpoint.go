package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// DocumentDTO is a staff document requiring acknowledgement, e.g. a
// hygiene instruction or a new house policy.
type DocumentDTO struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Version        int        `json:"version"`
	PublishedAt    time.Time  `json:"published_at"`
	RequiresAck    bool       `json:"requires_ack"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

type DocumentEndpoint struct {
	transport *Transport
}

// List returns all documents visible to the caller, with per-caller
// acknowledgement timestamps filled in.
func (e *DocumentEndpoint) List(ctx context.Context) ([]DocumentDTO, error) {
	resp, err := e.transport.Get(ctx, "/api/v1/documents", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Data []DocumentDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Acknowledge records that the caller has read the document.
func (e *DocumentEndpoint) Acknowledge(ctx context.Context, id string) error {
	_, err := e.transport.Post(ctx, fmt.Sprintf("/api/v1/documents/%s/ack", id), nil, nil)
	return err
}

// Download streams the document file. The caller must close the reader.
func (e *DocumentEndpoint) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	return e.transport.GetStream(ctx, fmt.Sprintf("/api/v1/documents/%s/file", id), nil)
}
