package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressExtractRoundTrip(t *testing.T) {
	body := `{"sessions":[{"state":"closed","net_work_seconds":28800}]}`
	archiver := Archiver{Dir: t.TempDir()}

	archive, err := archiver.Compress("gastrocore-snap1.json", strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, int64(len(body)), archive.Size)
	assert.True(t, strings.HasSuffix(archive.Path, "gastrocore-snap1.json.xz"))

	wantSum := sha256.Sum256([]byte(body))
	assert.Equal(t, hex.EncodeToString(wantSum[:]), archive.Checksum)

	var out bytes.Buffer
	extracted, err := Extract(archive.Path, &out)
	require.NoError(t, err)

	assert.Equal(t, body, out.String())
	assert.Equal(t, archive.Checksum, extracted.Checksum)
	assert.Equal(t, archive.Size, extracted.Size)
}

func TestExtractMissingArchive(t *testing.T) {
	var out bytes.Buffer
	_, err := Extract("/nonexistent/archive.xz", &out)
	assert.Error(t, err)
}
