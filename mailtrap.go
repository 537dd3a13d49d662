package mailtrap

import (
	"github.com/mailtrap/mailtrap-go/internal/core"
)

// Type aliases to re-export core types for the public API.
// This allows users to access types like mailtrap.Mail instead of
// core.Mail, maintaining a clean public interface while keeping
// implementation details internal.
type (
	Address           = core.Address
	Attachment        = core.Attachment
	AttachmentOption  = core.AttachmentOption
	Mail              = core.Mail
	BatchBase         = core.BatchBase
	SendResponse      = core.SendResponse
	BatchResponse     = core.BatchResponse
	BatchItemResponse = core.BatchItemResponse
	ValidationError   = core.ValidationError
	Serializable      = core.Serializable
)

// Attachment disposition values.
const (
	DispositionAttachment = core.DispositionAttachment
	DispositionInline     = core.DispositionInline
)

// Constructors and helpers re-exported from the core model.
var (
	NewMail                 = core.NewMail
	NewMailFromTemplate     = core.NewMailFromTemplate
	NewBatchBase            = core.NewBatchBase
	NewAttachment           = core.NewAttachment
	NewAttachmentFromReader = core.NewAttachmentFromReader
	NewValidationError      = core.NewValidationError
	ValidEmail              = core.ValidEmail
	AssertEmail             = core.AssertEmail
	WithType                = core.WithType
	WithDisposition         = core.WithDisposition
	WithContentID           = core.WithContentID
)

// ErrAttachmentContent indicates attachment content that is not valid
// base64.
var ErrAttachmentContent = core.ErrAttachmentContent
