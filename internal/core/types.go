package core

// Serializable is implemented by payload models that can render themselves
// into the sparse wire map sent to the API.
type Serializable interface {
	Serialize() map[string]any
}

// Address represents an email address with optional display name.
type Address struct {
	Email string `json:"email"`          // Email address (required)
	Name  string `json:"name,omitempty"` // Display name (optional)
}

// Valid checks if the address has a plausible email.
func (a Address) Valid() bool {
	return ValidEmail(a.Email)
}

// Serialize returns the sparse wire shape of the address.
func (a Address) Serialize() map[string]any {
	m := map[string]any{"email": a.Email}
	if a.Name != "" {
		m["name"] = a.Name
	}
	return m
}

func serializeAddresses(addresses []Address) []map[string]any {
	out := make([]map[string]any, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, a.Serialize())
	}
	return out
}

func serializeAttachments(attachments []*Attachment) []map[string]any {
	out := make([]map[string]any, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, a.Serialize())
	}
	return out
}

// Mail represents a single email message. Either subject plus text/html
// body or a template UUID is expected; the server enforces that rule, the
// client does not.
type Mail struct {
	From            *Address
	To              []Address
	CC              []Address
	BCC             []Address
	ReplyTo         *Address
	Subject         string
	Text            string
	HTML            string
	Category        string
	Headers         map[string]string
	CustomVariables map[string]any
	Attachments     []*Attachment

	// TemplateUUID references a server-stored template. When set, subject
	// and body are generated server-side from TemplateVariables.
	TemplateUUID      string
	TemplateVariables map[string]any
}

// NewMail creates an empty content-oriented message with the structural
// defaults in place. Recipient lists and header/variable maps are
// initialized so they serialize as empty collections rather than being
// omitted.
func NewMail() *Mail {
	return &Mail{
		To:              []Address{},
		CC:              []Address{},
		BCC:             []Address{},
		Headers:         map[string]string{},
		CustomVariables: map[string]any{},
		Attachments:     []*Attachment{},
	}
}

// NewMailFromTemplate creates an empty template-oriented message. It is the
// same model as NewMail; the only difference is that TemplateVariables is
// initialized, so it serializes even when empty.
func NewMailFromTemplate() *Mail {
	m := NewMail()
	m.TemplateVariables = map[string]any{}
	return m
}

// AddAttachment constructs an attachment from base64 content, appends it and
// returns it. Invalid content fails fast with ErrAttachmentContent.
func (m *Mail) AddAttachment(content, filename string, opts ...AttachmentOption) (*Attachment, error) {
	a, err := NewAttachment(content, filename, opts...)
	if err != nil {
		return nil, err
	}
	m.Attachments = append(m.Attachments, a)
	return a, nil
}

// SetAttachments replaces the attachment list. Every entry's content is
// revalidated through the constructor, so the base64 invariant holds for
// attachments built by hand.
func (m *Mail) SetAttachments(attachments []*Attachment) error {
	validated, err := validateAttachments(attachments)
	if err != nil {
		return err
	}
	m.Attachments = validated
	return nil
}

func validateAttachments(attachments []*Attachment) ([]*Attachment, error) {
	out := make([]*Attachment, 0, len(attachments))
	for _, a := range attachments {
		v, err := NewAttachment(a.Content, a.Filename)
		if err != nil {
			return nil, err
		}
		v.Type = a.Type
		v.Disposition = a.Disposition
		v.ContentID = a.ContentID
		out = append(out, v)
	}
	return out, nil
}

// Serialize returns the sparse wire object for the message. Nil pointers,
// empty strings and nil collections are omitted; collections initialized by
// the constructors serialize even when empty.
func (m *Mail) Serialize() map[string]any {
	out := map[string]any{}
	if m.From != nil {
		out["from"] = m.From.Serialize()
	}
	if m.To != nil {
		out["to"] = serializeAddresses(m.To)
	}
	if m.CC != nil {
		out["cc"] = serializeAddresses(m.CC)
	}
	if m.BCC != nil {
		out["bcc"] = serializeAddresses(m.BCC)
	}
	if m.ReplyTo != nil {
		out["reply_to"] = m.ReplyTo.Serialize()
	}
	if m.Subject != "" {
		out["subject"] = m.Subject
	}
	if m.Text != "" {
		out["text"] = m.Text
	}
	if m.HTML != "" {
		out["html"] = m.HTML
	}
	if m.Category != "" {
		out["category"] = m.Category
	}
	if m.Headers != nil {
		out["headers"] = m.Headers
	}
	if m.CustomVariables != nil {
		out["custom_variables"] = m.CustomVariables
	}
	if m.Attachments != nil {
		out["attachments"] = serializeAttachments(m.Attachments)
	}
	if m.TemplateUUID != "" {
		out["template_uuid"] = m.TemplateUUID
	}
	if m.TemplateVariables != nil {
		out["template_variables"] = m.TemplateVariables
	}
	return out
}

// ToBatch converts the message into a batch base carrying its shared
// fields. Recipients are dropped; they are per-request in a batch.
func (m *Mail) ToBatch() *BatchBase {
	return &BatchBase{
		From:              m.From,
		ReplyTo:           m.ReplyTo,
		Subject:           m.Subject,
		Text:              m.Text,
		HTML:              m.HTML,
		Category:          m.Category,
		Headers:           m.Headers,
		CustomVariables:   m.CustomVariables,
		Attachments:       m.Attachments,
		TemplateUUID:      m.TemplateUUID,
		TemplateVariables: m.TemplateVariables,
	}
}

// BatchBase holds the fields shared by every message in a batch. It is a
// Mail without recipient lists: to, cc and bcc exist only on the individual
// batch requests.
type BatchBase struct {
	From            *Address
	ReplyTo         *Address
	Subject         string
	Text            string
	HTML            string
	Category        string
	Headers         map[string]string
	CustomVariables map[string]any
	Attachments     []*Attachment

	TemplateUUID      string
	TemplateVariables map[string]any
}

// NewBatchBase creates a batch base with the given sender. The sender email
// is validated up front so a broken base cannot reach the batch endpoint.
func NewBatchBase(from Address) (*BatchBase, error) {
	if err := AssertEmail(from.Email, "from.email"); err != nil {
		return nil, err
	}
	return &BatchBase{
		From:            &from,
		Headers:         map[string]string{},
		CustomVariables: map[string]any{},
		Attachments:     []*Attachment{},
	}, nil
}

// AddAttachment constructs an attachment from base64 content, appends it and
// returns it.
func (b *BatchBase) AddAttachment(content, filename string, opts ...AttachmentOption) (*Attachment, error) {
	a, err := NewAttachment(content, filename, opts...)
	if err != nil {
		return nil, err
	}
	b.Attachments = append(b.Attachments, a)
	return a, nil
}

// SetAttachments replaces the attachment list, revalidating every entry's
// content.
func (b *BatchBase) SetAttachments(attachments []*Attachment) error {
	validated, err := validateAttachments(attachments)
	if err != nil {
		return err
	}
	b.Attachments = validated
	return nil
}

// Serialize returns the sparse wire object for the base. It never contains
// to, cc or bcc keys.
func (b *BatchBase) Serialize() map[string]any {
	out := map[string]any{}
	if b.From != nil {
		out["from"] = b.From.Serialize()
	}
	if b.ReplyTo != nil {
		out["reply_to"] = b.ReplyTo.Serialize()
	}
	if b.Subject != "" {
		out["subject"] = b.Subject
	}
	if b.Text != "" {
		out["text"] = b.Text
	}
	if b.HTML != "" {
		out["html"] = b.HTML
	}
	if b.Category != "" {
		out["category"] = b.Category
	}
	if b.Headers != nil {
		out["headers"] = b.Headers
	}
	if b.CustomVariables != nil {
		out["custom_variables"] = b.CustomVariables
	}
	if b.Attachments != nil {
		out["attachments"] = serializeAttachments(b.Attachments)
	}
	if b.TemplateUUID != "" {
		out["template_uuid"] = b.TemplateUUID
	}
	if b.TemplateVariables != nil {
		out["template_variables"] = b.TemplateVariables
	}
	return out
}

// SendResponse is the API response for a single send. Bulk and sandbox
// modes may omit message IDs.
type SendResponse struct {
	Success    bool     `json:"success"`
	MessageIDs []string `json:"message_ids,omitempty"`
}

// BatchResponse is the API response for a batch send. Responses holds one
// entry per submitted request, in request order. A failed entry is data,
// not an error: callers inspect each Success flag.
type BatchResponse struct {
	Success   bool                `json:"success"`
	Responses []BatchItemResponse `json:"responses"`
}

// BatchItemResponse is the per-request outcome inside a batch response.
type BatchItemResponse struct {
	Success    bool     `json:"success"`
	MessageIDs []string `json:"message_ids,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}
