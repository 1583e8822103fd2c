package posimport

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/timeclock"
)

const DefaultChunkSize = 500

// BatchService is the slice of the import endpoint the submitter needs.
type BatchService interface {
	Submit(ctx context.Context, req v1.ImportSubmitRequest) (*v1.ImportBatchDTO, error)
}

// Submitter uploads parsed POS lines in chunks. Zero values get defaults:
// nil Log falls back to slog.Default, zero ChunkSize to DefaultChunkSize.
type Submitter struct {
	Service   BatchService
	Reporter  timeclock.Reporter
	Log       *slog.Logger
	ChunkSize int
}

// Submit dedupes, chunks and uploads records as import batches. It stops
// at the first failed chunk; lines in later chunks stay unsubmitted.
func (s *Submitter) Submit(ctx context.Context, source string, records []Record) ([]*v1.ImportBatchDTO, error) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	unique, dupes := Dedupe(records)
	if dupes > 0 {
		log.Info("dropped duplicate pos lines", "count", dupes)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	var batches []*v1.ImportBatchDTO
	for start := 0; start < len(unique); start += chunk {
		end := start + chunk
		if end > len(unique) {
			end = len(unique)
		}

		req := v1.ImportSubmitRequest{Source: source, Records: toDTOs(unique[start:end])}
		batch, err := s.Service.Submit(ctx, req)
		if err != nil {
			if s.Reporter != nil {
				s.Reporter.Error(fmt.Sprintf("POS import %s failed after %d of %d lines", source, start, len(unique)))
			}
			return batches, fmt.Errorf("submit chunk at %d: %w", start, err)
		}

		batches = append(batches, batch)
		log.Debug("submitted pos chunk", "batch", batch.ID, "lines", end-start)
	}

	if s.Reporter != nil {
		s.Reporter.Info(fmt.Sprintf("POS import %s: %d lines in %d batches, %d duplicates dropped",
			source, len(unique), len(batches), dupes))
	}
	return batches, nil
}

func toDTOs(records []Record) []v1.ImportRecordDTO {
	out := make([]v1.ImportRecordDTO, len(records))
	for i, r := range records {
		out[i] = v1.ImportRecordDTO{
			TicketNo:    r.TicketNo,
			Register:    r.Register,
			BusinessDay: common.DateOnly{Time: r.BusinessDay},
			BookedAt:    r.BookedAt,
			GrossCents:  r.GrossCents,
			NetCents:    r.NetCents,
			PaymentKind: r.PaymentKind,
		}
	}
	return out
}
