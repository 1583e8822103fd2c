// Package backup drives the snapshot workflow: trigger a snapshot on the
// server, wait for it, pull the archive down, xz-compress it locally and
// push an offsite copy to S3. Restore reverses the path.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// Archive describes one compressed snapshot on disk. Checksum and Size
// refer to the uncompressed body, matching what the server reports.
type Archive struct {
	Path     string
	Checksum string
	Size     int64
}

// Archiver writes snapshot streams into xz archives under Dir.
type Archiver struct {
	Dir string
}

// Compress copies the snapshot stream into <Dir>/<name>.xz and returns
// the archive with the sha256 of the uncompressed body.
func (a Archiver) Compress(name string, r io.Reader) (*Archive, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	path := filepath.Join(a.Dir, name+".xz")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	w, err := xz.NewWriter(f)
	if err != nil {
		return nil, fmt.Errorf("xz writer: %w", err)
	}

	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(w, hash), r)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}

	return &Archive{
		Path:     path,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
		Size:     size,
	}, nil
}

// Extract decompresses an archive into w and returns the checksum and
// size of the extracted body.
func Extract(path string, w io.Writer) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}

	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(w, hash), r)
	if err != nil {
		return nil, fmt.Errorf("extract snapshot: %w", err)
	}

	return &Archive{
		Path:     path,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
		Size:     size,
	}, nil
}
