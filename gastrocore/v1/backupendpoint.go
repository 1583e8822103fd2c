package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Backup snapshot statuses.
const (
	BackupPending = "pending"
	BackupReady   = "ready"
	BackupFailed  = "failed"
)

type BackupDTO struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum,omitempty"` // sha256 of the snapshot body
	CreatedAt time.Time `json:"created_at"`
	Error     string    `json:"error,omitempty"`
}

// BackupEndpoint triggers, downloads and restores system snapshots.
type BackupEndpoint struct {
	transport *Transport
}

// Create asks the backend to assemble a new snapshot. Poll Get until it
// reports ready.
func (e *BackupEndpoint) Create(ctx context.Context) (*BackupDTO, error) {
	resp, err := e.transport.Post(ctx, "/api/v1/backups", nil, nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Data *BackupDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *BackupEndpoint) List(ctx context.Context) ([]BackupDTO, error) {
	resp, err := e.transport.Get(ctx, "/api/v1/backups", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Data []BackupDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (e *BackupEndpoint) Get(ctx context.Context, id string) (*BackupDTO, error) {
	resp, err := e.transport.Get(ctx, fmt.Sprintf("/api/v1/backups/%s", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Data *BackupDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Download streams the snapshot archive. The caller must close the reader.
func (e *BackupEndpoint) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	return e.transport.GetStream(ctx, fmt.Sprintf("/api/v1/backups/%s/archive", id), nil)
}

// Restore uploads a snapshot to replay into the backend.
func (e *BackupEndpoint) Restore(ctx context.Context, filename string, r io.Reader) error {
	_, err := e.transport.PostMultipart(ctx, "/api/v1/backups/restore", "archive", filename, r)
	return err
}
