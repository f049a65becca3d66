package contact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/rajshekhar/folio/internal/validation"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// MaxAttachmentSize is the largest accepted attachment, 5 MiB.
const MaxAttachmentSize int64 = 5 * 1024 * 1024

// AllowedMIMETypes are the accepted attachment media types.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

const (
	MsgAttachmentTooLarge = "File size must be less than 5MB"
	MsgAttachmentType     = "File type not supported. Please upload images, PDFs, or documents."
	MsgAttachmentUploaded = "File uploaded successfully!"

	attachmentField = "attachment"
	unknownMIME     = "application/octet-stream"
)

// ErrAttachmentTooLarge is returned while reading an attachment whose content
// has grown past MaxAttachmentSize since it was selected.
var ErrAttachmentTooLarge = errors.New("attachment exceeds 5 MiB")

// Attachment is a file selected for upload. Its content is read lazily so an
// oversized file is rejected without being loaded.
type Attachment struct {
	Name string
	Size int64
	MIME string
	open func() (io.ReadCloser, error)
}

// NewAttachment builds an in-memory attachment, sniffing its media type.
func NewAttachment(name string, data []byte) Attachment {
	return Attachment{
		Name: name,
		Size: int64(len(data)),
		MIME: mimetype.Detect(data).String(),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// AttachmentFromFile describes the file at path. Only the header is read to
// detect the media type.
func AttachmentFromFile(path string) (Attachment, error) {
	if err := validation.CheckFileReadable(path); err != nil {
		return Attachment{}, fmt.Errorf("attachment: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("stat attachment: %w", err)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("detect attachment type: %w", err)
	}
	return Attachment{
		Name: filepath.Base(path),
		Size: info.Size(),
		MIME: mt.String(),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Open returns the attachment content. Reads fail with ErrAttachmentTooLarge
// once more than MaxAttachmentSize bytes have been read.
func (a Attachment) Open() (io.ReadCloser, error) {
	if a.open == nil {
		return nil, fmt.Errorf("attachment %q has no content", a.Name)
	}
	rc, err := a.open()
	if err != nil {
		return nil, err
	}
	return &cappedReader{Reader: io.LimitReader(rc, MaxAttachmentSize+1), Closer: rc}, nil
}

type cappedReader struct {
	io.Reader
	io.Closer
	read int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.Reader.Read(p)
	c.read += int64(n)
	if c.read > MaxAttachmentSize {
		return n, ErrAttachmentTooLarge
	}
	return n, err
}

// ContentType is the media type sent with the upload.
func (a Attachment) ContentType() string {
	if a.MIME == "" {
		return unknownMIME
	}
	return a.MIME
}

// HumanSize renders the size for display, e.g. "4.0 MiB".
func (a Attachment) HumanSize() string {
	if a.Size < 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(a.Size))
}

// CheckAttachment applies the size limit first and then the media type
// allow-list. Failures are *errors.ValidationError values whose Message is
// ready to display.
func CheckAttachment(a Attachment) error {
	if a.Size > MaxAttachmentSize {
		return folioerrors.NewValidationError(attachmentField, MsgAttachmentTooLarge, nil)
	}
	if !AllowedMIME(a.MIME) {
		return folioerrors.NewValidationError(attachmentField, MsgAttachmentType, nil)
	}
	return nil
}

// AllowedMIME reports whether the media type, ignoring parameters such as
// charset, is on the allow-list.
func AllowedMIME(contentType string) bool {
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, allowed := range AllowedMIMETypes {
		if base == allowed {
			return true
		}
	}
	return false
}
