package mailtrap

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gomessage "github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
)

// Headers that map to dedicated payload fields, plus the transport headers
// a composed RFC 5322 message carries. The message is regenerated
// server-side from its components, so these are redundant and potentially
// conflicting and must not be forwarded as custom headers. Names are
// compared lowercased with hyphens removed.
var convertSkippedHeaders = keySet(
	"from", "to", "cc", "bcc", "replyto", "subject", "category",
	"customvariables", "contenttype", "contenttransferencoding",
	"date", "messageid", "mimeversion",
)

// FromReader parses an RFC 5322 message and converts it into a Mail.
func FromReader(r io.Reader) (*Mail, error) {
	entity, err := gomessage.Read(r)
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return FromMessage(entity)
}

// FromMessage converts a parsed message entity into a Mail: address
// headers become Address values, text and HTML parts become the bodies,
// and the remaining parts become base64-encoded attachments.
func FromMessage(entity *gomessage.Entity) (*Mail, error) {
	m := NewMail()
	header := mail.Header{Header: entity.Header}

	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		m.From = convertAddress(from[0])
	}
	if replyTo, err := header.AddressList("Reply-To"); err == nil && len(replyTo) > 0 {
		m.ReplyTo = convertAddress(replyTo[0])
	}
	m.To = convertAddressList(header, "To")
	m.CC = convertAddressList(header, "Cc")
	m.BCC = convertAddressList(header, "Bcc")

	if subject, err := header.Subject(); err == nil {
		m.Subject = subject
	}
	m.Category = entity.Header.Get("Category")
	m.Headers = convertHeaders(entity)

	if err := convertBody(m, entity); err != nil {
		return nil, err
	}
	return m, nil
}

func convertAddress(a *mail.Address) *Address {
	return &Address{Email: a.Address, Name: a.Name}
}

func convertAddressList(header mail.Header, key string) []Address {
	list, err := header.AddressList(key)
	if err != nil {
		return []Address{}
	}
	out := make([]Address, 0, len(list))
	for _, a := range list {
		out = append(out, Address{Email: a.Address, Name: a.Name})
	}
	return out
}

func convertHeaders(entity *gomessage.Entity) map[string]string {
	headers := map[string]string{}
	fields := entity.Header.Fields()
	for fields.Next() {
		normalized := strings.ReplaceAll(strings.ToLower(fields.Key()), "-", "")
		if _, skip := convertSkippedHeaders[normalized]; skip {
			continue
		}
		value, err := fields.Text()
		if err != nil {
			value = fields.Value()
		}
		headers[fields.Key()] = value
	}
	return headers
}

// convertBody fills the text and HTML bodies and collects attachments. It
// handles single-part and multipart messages, including nested multipart.
func convertBody(m *Mail, entity *gomessage.Entity) error {
	if mr := entity.MultipartReader(); mr != nil {
		return convertMultipart(m, mr)
	}

	contentType, _, _ := entity.Header.ContentType()
	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return fmt.Errorf("read message body: %w", err)
	}
	if strings.HasPrefix(contentType, "text/html") {
		m.HTML = string(body)
	} else {
		m.Text = string(body)
	}
	return nil
}

func convertMultipart(m *Mail, mr gomessage.MultipartReader) error {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read message part: %w", err)
		}

		contentType, _, _ := part.Header.ContentType()
		disposition, _, _ := part.Header.ContentDisposition()
		inline := strings.HasPrefix(contentType, "text/") && disposition != "attachment"

		switch {
		case inline && strings.HasPrefix(contentType, "text/plain") && m.Text == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return fmt.Errorf("read text part: %w", err)
			}
			m.Text = string(body)

		case inline && strings.HasPrefix(contentType, "text/html") && m.HTML == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return fmt.Errorf("read html part: %w", err)
			}
			m.HTML = string(body)

		case strings.HasPrefix(contentType, "multipart/"):
			if nested := part.MultipartReader(); nested != nil {
				if err := convertMultipart(m, nested); err != nil {
					return err
				}
			}

		default:
			if err := convertAttachment(m, part, contentType, disposition); err != nil {
				return err
			}
		}
	}
}

func convertAttachment(m *Mail, part *gomessage.Entity, contentType, disposition string) error {
	attachmentHeader := mail.AttachmentHeader{Header: part.Header}
	filename, _ := attachmentHeader.Filename()

	body, err := io.ReadAll(part.Body)
	if err != nil {
		return fmt.Errorf("read attachment %q: %w", filename, err)
	}

	opts := []AttachmentOption{}
	if contentType != "" {
		opts = append(opts, WithType(contentType))
	}
	if disposition != "" {
		opts = append(opts, WithDisposition(disposition))
	}
	if contentID := strings.Trim(part.Header.Get("Content-Id"), "<>"); contentID != "" {
		opts = append(opts, WithContentID(contentID))
	}

	attachment, err := NewAttachmentFromReader(bytes.NewReader(body), filename, opts...)
	if err != nil {
		return err
	}
	m.Attachments = append(m.Attachments, attachment)
	return nil
}
