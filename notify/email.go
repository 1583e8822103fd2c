package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/carlsburger/gastrocore/config"
)

type EmailMessage struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Email struct {
	client     *ses.Client
	sender     string
	recipients []string
}

func ConnectEmail(ctx context.Context, cfg config.EmailConfig) (*Email, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &Email{
		client:     ses.NewFromConfig(awsCfg),
		sender:     cfg.Sender,
		recipients: cfg.Recipients,
	}, nil
}

// Send delivers the message via SES. From and To fall back to the
// configured sender and recipients when left empty.
func (e *Email) Send(ctx context.Context, msg *EmailMessage) error {
	if msg.From == "" {
		msg.From = e.sender
	}
	if len(msg.To) == 0 {
		msg.To = e.recipients
	}

	emailRaw, err := BuildEmailBuffer(msg)
	if err != nil {
		return err
	}

	_, err = e.client.SendRawEmail(
		ctx,
		&ses.SendRawEmailInput{
			RawMessage: &types.RawMessage{
				Data: emailRaw.Bytes(),
			},
		},
	)
	return err
}

func BuildEmailBuffer(msg *EmailMessage) (*bytes.Buffer, error) {
	var emailRaw bytes.Buffer
	writer := multipart.NewWriter(&emailRaw)
	boundary := writer.Boundary()

	// Set headers manually
	headers := fmt.Sprintf("From: %s\r\n", msg.From)
	if len(msg.To) > 0 {
		headers += fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", "))
	}
	if len(msg.Cc) > 0 {
		headers += fmt.Sprintf("Cc: %s\r\n", strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		headers += fmt.Sprintf("Bcc: %s\r\n", strings.Join(msg.Bcc, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", msg.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	headers += "\r\n"
	emailRaw.WriteString(headers)

	// Create alternative part (text/plain + text/html)
	altBuf := &bytes.Buffer{}
	altWriter := multipart.NewWriter(altBuf)
	altBoundary := altWriter.Boundary()

	altHeaders := textproto.MIMEHeader{}
	altHeaders.Set("Content-Type", "multipart/alternative; boundary="+altBoundary)
	altPart, _ := writer.CreatePart(altHeaders)

	// Text part
	if msg.Text != "" {
		part, _ := altWriter.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/plain; charset=UTF-8"},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		qp := quotedprintable.NewWriter(part)
		qp.Write([]byte(msg.Text))
		qp.Close()
	}

	// HTML part
	if msg.HTML != "" {
		part, _ := altWriter.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/html; charset=UTF-8"},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		qp := quotedprintable.NewWriter(part)
		qp.Write([]byte(msg.HTML))
		qp.Close()
	}

	altWriter.Close()
	altPart.Write(altBuf.Bytes())

	// Attachments
	for _, att := range msg.Attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", fmt.Sprintf("%s; name=\"%s\"", att.ContentType, att.Filename))
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", att.Filename))
		h.Set("Content-Transfer-Encoding", "base64")

		part, _ := writer.CreatePart(h)
		b := make([]byte, base64.StdEncoding.EncodedLen(len(att.Content)))
		base64.StdEncoding.Encode(b, att.Content)

		// wrap lines at 76 chars
		for i := 0; i < len(b); i += 76 {
			end := i + 76
			if end > len(b) {
				end = len(b)
			}
			part.Write(b[i:end])
			part.Write([]byte("\r\n"))
		}
	}

	writer.Close()

	return &emailRaw, nil
}

// ImportFailure describes one POS export that could not be ingested.
type ImportFailure struct {
	Source string
	Reason string
}

// ImportFailureDigest builds the message sent to operations when one or
// more exports of an ingestion run failed. From and To are left empty so
// Send falls back to the configured sender and recipients.
func ImportFailureDigest(failures []ImportFailure) *EmailMessage {
	var body strings.Builder
	body.WriteString("The following POS exports could not be imported:\n\n")
	for _, f := range failures {
		fmt.Fprintf(&body, "  %s\n    %s\n", f.Source, f.Reason)
	}
	body.WriteString("\nThe files remain in the bucket; re-upload or fix and retry.\n")

	return &EmailMessage{
		Subject: fmt.Sprintf("POS import failures (%d)", len(failures)),
		Text:    body.String(),
	}
}
