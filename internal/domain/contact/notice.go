package contact

import (
	"errors"

	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// NoticeKind classifies a transient notification.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient, user-facing outcome message.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool { return n.Kind == NoticeNone }

// NoticeForAttachment converts the result of AttachFile into a notice.
func NoticeForAttachment(err error) Notice {
	if err == nil {
		return Notice{Kind: NoticeSuccess, Text: MsgAttachmentUploaded}
	}
	var ve *folioerrors.ValidationError
	if errors.As(err, &ve) {
		return Notice{Kind: NoticeError, Text: ve.Message}
	}
	return Notice{Kind: NoticeError, Text: err.Error()}
}
