package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/rajshekhar/folio/internal/domain/contact"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// Multipart part names expected by the backend.
const (
	ContactPart = "contact"
	FilePart    = "file"
)

// SubmitContact posts the submission as multipart/form-data: a JSON part
// named "contact" and, when present, the attachment as a part named "file".
func (c *Client) SubmitContact(ctx context.Context, s contact.Submission) error {
	const op = "submit contact"

	body, contentType, err := encodeContact(s)
	if err != nil {
		return folioerrors.NewTransportError(op, 0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contact", body)
	if err != nil {
		return folioerrors.NewTransportError(op, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	_, err = c.do(op, req)
	return err
}

// SubmitInterest posts the quick-contact email as JSON.
func (c *Client) SubmitInterest(ctx context.Context, email string) error {
	return c.postJSON(ctx, "submit interest", "/contact/interest", map[string]string{"email": email})
}

func encodeContact(s contact.Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, ContactPart))
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating contact part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(s.Fields); err != nil {
		return nil, "", fmt.Errorf("encoding contact part: %w", err)
	}

	if s.Attachment != nil {
		if err := writeAttachment(w, s.Attachment); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeAttachment(w *multipart.Writer, a *contact.Attachment) error {
	src, err := a.Open()
	if err != nil {
		return fmt.Errorf("opening attachment: %w", err)
	}
	defer src.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FilePart, escapeQuotes(a.Name)))
	header.Set("Content-Type", a.ContentType())
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copying attachment: %w", err)
	}
	return nil
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

var (
	_ contact.Submitter         = (*Client)(nil)
	_ contact.InterestSubmitter = (*Client)(nil)
)
