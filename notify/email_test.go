package notify

import (
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmailBuffer(t *testing.T) {
	msg := &EmailMessage{
		From:    "gastrocore@carlsburger.test",
		To:      []string{"ops@carlsburger.test"},
		Subject: "Shift summary 2025-06-02",
		Text:    "8 staff clocked in, 2 open breaks at close.",
		HTML:    "<p>8 staff clocked in, 2 open breaks at close.</p>",
		Attachments: []Attachment{
			{Filename: "sessions.csv", ContentType: "text/csv", Content: []byte("staff,net_seconds\nanna,28800\n")},
		},
	}

	buf, err := BuildEmailBuffer(msg)
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, "gastrocore@carlsburger.test", parsed.Header.Get("From"))
	assert.Equal(t, "ops@carlsburger.test", parsed.Header.Get("To"))
	assert.Equal(t, "Shift summary 2025-06-02", parsed.Header.Get("Subject"))

	mediatype, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediatype)

	var sawAlternative, sawAttachment bool
	mr := multipart.NewReader(parsed.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		ct := part.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "multipart/alternative"):
			sawAlternative = true
		case strings.HasPrefix(ct, "text/csv"):
			sawAttachment = true
			assert.Contains(t, part.Header.Get("Content-Disposition"), "sessions.csv")
		}
	}

	assert.True(t, sawAlternative, "missing text/html alternative part")
	assert.True(t, sawAttachment, "missing csv attachment part")
}

func TestBuildEmailBufferTextOnly(t *testing.T) {
	msg := &EmailMessage{
		From:    "gastrocore@carlsburger.test",
		To:      []string{"ops@carlsburger.test"},
		Subject: "Backup done",
		Text:    "Nightly backup uploaded.",
	}

	buf, err := BuildEmailBuffer(msg)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Backup done")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.NotContains(t, raw, "text/html")
}

func TestImportFailureDigest(t *testing.T) {
	msg := ImportFailureDigest([]ImportFailure{
		{Source: "exports/2026-08-25.xlsx", Reason: "row 14: gross: invalid amount"},
		{Source: "exports/2026-08-25.csv", Reason: "missing ticket column"},
	})

	assert.Equal(t, "POS import failures (2)", msg.Subject)
	assert.Empty(t, msg.From, "falls back to configured sender")
	assert.Empty(t, msg.To, "falls back to configured recipients")
	assert.Contains(t, msg.Text, "exports/2026-08-25.xlsx")
	assert.Contains(t, msg.Text, "row 14: gross: invalid amount")
	assert.Contains(t, msg.Text, "missing ticket column")
}
