package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/timeclock"
)

const (
	DefaultPollEvery = 2 * time.Second
	DefaultWaitFor   = 5 * time.Minute
)

// SnapshotService is the slice of the backup endpoint the runner needs.
type SnapshotService interface {
	Create(ctx context.Context) (*v1.BackupDTO, error)
	Get(ctx context.Context, id string) (*v1.BackupDTO, error)
	Download(ctx context.Context, id string) (io.ReadCloser, error)
	Restore(ctx context.Context, filename string, r io.Reader) error
}

// Offsite receives archive copies. *Store implements it.
type Offsite interface {
	Upload(ctx context.Context, name string, r io.Reader) error
}

// Runner orchestrates one backup or restore pass. Offsite and Reporter
// are optional; zero durations get defaults.
type Runner struct {
	Service   SnapshotService
	Archiver  Archiver
	Offsite   Offsite
	Reporter  timeclock.Reporter
	Log       *slog.Logger
	PollEvery time.Duration
	WaitFor   time.Duration
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// Run triggers a snapshot, waits until the server reports it ready,
// downloads and compresses it, and ships the offsite copy.
func (r *Runner) Run(ctx context.Context) (*Archive, error) {
	snap, err := r.Service.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	r.logger().Info("snapshot requested", "id", snap.ID)

	snap, err = r.await(ctx, snap)
	if err != nil {
		return nil, err
	}

	stream, err := r.Service.Download(ctx, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("download snapshot %s: %w", snap.ID, err)
	}
	defer stream.Close()

	name := fmt.Sprintf("gastrocore-%s.json", snap.ID)
	archive, err := r.Archiver.Compress(name, stream)
	if err != nil {
		return nil, err
	}

	if snap.Checksum != "" && snap.Checksum != archive.Checksum {
		return nil, fmt.Errorf("snapshot %s checksum mismatch: server %s, local %s",
			snap.ID, snap.Checksum, archive.Checksum)
	}

	if r.Offsite != nil {
		f, err := os.Open(archive.Path)
		if err != nil {
			return nil, fmt.Errorf("open archive for upload: %w", err)
		}
		defer f.Close()
		if err := r.Offsite.Upload(ctx, filepath.Base(archive.Path), f); err != nil {
			return nil, fmt.Errorf("offsite copy: %w", err)
		}
	}

	if r.Reporter != nil {
		r.Reporter.Info(fmt.Sprintf("backup %s archived, %d bytes", snap.ID, archive.Size))
	}
	r.logger().Info("backup complete", "id", snap.ID, "path", archive.Path, "bytes", archive.Size)
	return archive, nil
}

// Restore extracts a local archive and uploads the snapshot body to the
// restore endpoint.
func (r *Runner) Restore(ctx context.Context, archivePath string) error {
	tmp, err := os.CreateTemp("", "gastrocore-restore-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	extracted, err := Extract(archivePath, tmp)
	if err != nil {
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind temp file: %w", err)
	}

	if err := r.Service.Restore(ctx, filepath.Base(archivePath), tmp); err != nil {
		return fmt.Errorf("restore upload: %w", err)
	}

	if r.Reporter != nil {
		r.Reporter.Info(fmt.Sprintf("restore uploaded, %d bytes", extracted.Size))
	}
	r.logger().Info("restore uploaded", "archive", archivePath, "bytes", extracted.Size)
	return nil
}

func (r *Runner) await(ctx context.Context, snap *v1.BackupDTO) (*v1.BackupDTO, error) {
	pollEvery := r.PollEvery
	if pollEvery <= 0 {
		pollEvery = DefaultPollEvery
	}
	waitFor := r.WaitFor
	if waitFor <= 0 {
		waitFor = DefaultWaitFor
	}

	deadline := time.Now().Add(waitFor)
	for snap.Status == v1.BackupPending {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("snapshot %s not ready after %s", snap.ID, waitFor)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollEvery):
		}

		var err error
		snap, err = r.Service.Get(ctx, snap.ID)
		if err != nil {
			return nil, fmt.Errorf("poll snapshot: %w", err)
		}
	}

	if snap.Status == v1.BackupFailed {
		return nil, fmt.Errorf("snapshot %s failed: %s", snap.ID, snap.Error)
	}
	return snap, nil
}
