package core

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrAttachmentContent indicates that attachment content passed as a string
// is not valid base64.
var ErrAttachmentContent = errors.New("attachment content is not valid base64")

// Attachment disposition values accepted by the API.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Attachment represents a file attached to a mail message. Content is
// always stored base64-encoded; use the constructors to guarantee that
// invariant. Replace an attachment instead of mutating it.
type Attachment struct {
	// Content is the base64-encoded file content.
	Content string

	// Filename is the name of the file as it will appear in the email.
	Filename string

	// Type is the MIME content type of the file (optional).
	Type string

	// Disposition is "attachment" or "inline" (optional).
	Disposition string

	// ContentID is used to reference inline attachments from HTML (optional).
	ContentID string
}

// AttachmentOption configures optional attachment fields.
type AttachmentOption func(*Attachment)

// WithType sets the MIME content type.
func WithType(mimeType string) AttachmentOption {
	return func(a *Attachment) { a.Type = mimeType }
}

// WithDisposition sets the content disposition.
func WithDisposition(disposition string) AttachmentOption {
	return func(a *Attachment) { a.Disposition = disposition }
}

// WithContentID sets the content ID for inline attachments.
func WithContentID(contentID string) AttachmentOption {
	return func(a *Attachment) { a.ContentID = contentID }
}

// NewAttachment creates an attachment from an already base64-encoded string.
// The content must survive a decode/re-encode round trip unchanged,
// otherwise ErrAttachmentContent is returned.
func NewAttachment(content, filename string, opts ...AttachmentOption) (*Attachment, error) {
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil || base64.StdEncoding.EncodeToString(decoded) != content {
		return nil, fmt.Errorf("attachment %q: %w", filename, ErrAttachmentContent)
	}

	a := &Attachment{Content: content, Filename: filename}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewAttachmentFromReader creates an attachment by reading r to exhaustion
// and base64-encoding the bytes. The stored content never contains newlines.
func NewAttachmentFromReader(r io.Reader, filename string, opts ...AttachmentOption) (*Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("attachment %q: read content: %w", filename, err)
	}

	a := &Attachment{
		Content:  base64.StdEncoding.EncodeToString(data),
		Filename: filename,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Serialize returns the sparse wire shape of the attachment. Unset optional
// fields are omitted.
func (a *Attachment) Serialize() map[string]any {
	m := map[string]any{
		"content":  a.Content,
		"filename": a.Filename,
	}
	if a.Type != "" {
		m["type"] = a.Type
	}
	if a.Disposition != "" {
		m["disposition"] = a.Disposition
	}
	if a.ContentID != "" {
		m["content_id"] = a.ContentID
	}
	return m
}
