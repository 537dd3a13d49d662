package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	mailtrap "github.com/mailtrap/mailtrap-go"
)

// messageFile is the YAML shape of a message description. Empty fields are
// filled from the defaults file when one is given.
type messageFile struct {
	From              *addressSpec      `yaml:"from,omitempty"`
	ReplyTo           *addressSpec      `yaml:"reply_to,omitempty"`
	To                []addressSpec     `yaml:"to,omitempty"`
	CC                []addressSpec     `yaml:"cc,omitempty"`
	BCC               []addressSpec     `yaml:"bcc,omitempty"`
	Subject           string            `yaml:"subject,omitempty"`
	Text              string            `yaml:"text,omitempty"`
	HTML              string            `yaml:"html,omitempty"`
	Category          string            `yaml:"category,omitempty"`
	Headers           map[string]string `yaml:"headers,omitempty"`
	CustomVariables   map[string]any    `yaml:"custom_variables,omitempty"`
	Attachments       []attachmentSpec  `yaml:"attachments,omitempty"`
	TemplateUUID      string            `yaml:"template_uuid,omitempty"`
	TemplateVariables map[string]any    `yaml:"template_variables,omitempty"`
}

type addressSpec struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name,omitempty"`
}

// attachmentSpec names a local file to attach. Filename defaults to the
// base name of the path.
type attachmentSpec struct {
	Path        string `yaml:"path"`
	Filename    string `yaml:"filename,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Disposition string `yaml:"disposition,omitempty"`
	ContentID   string `yaml:"content_id,omitempty"`
}

// loadMessage reads a message file and merges the defaults file into its
// empty fields.
func loadMessage(path string) (*messageFile, error) {
	msg, err := decodeMessage(path)
	if err != nil {
		return nil, err
	}

	if defaultsFile != "" {
		defaults, err := decodeMessage(defaultsFile)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(msg, defaults); err != nil {
			return nil, fmt.Errorf("merge defaults %s: %w", defaultsFile, err)
		}
	}

	return msg, nil
}

func decodeMessage(path string) (*messageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message file: %w", err)
	}

	var msg messageFile
	if err := yaml.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &msg, nil
}

// mail builds the API message, reading and encoding attachment files.
func (m *messageFile) mail() (*mailtrap.Mail, error) {
	mail := mailtrap.NewMail()
	if m.TemplateUUID != "" {
		mail = mailtrap.NewMailFromTemplate()
		mail.TemplateUUID = m.TemplateUUID
		for k, v := range m.TemplateVariables {
			mail.TemplateVariables[k] = v
		}
	}

	if m.From != nil {
		mail.From = &mailtrap.Address{Email: m.From.Email, Name: m.From.Name}
	}
	if m.ReplyTo != nil {
		mail.ReplyTo = &mailtrap.Address{Email: m.ReplyTo.Email, Name: m.ReplyTo.Name}
	}
	mail.To = addresses(m.To)
	mail.CC = addresses(m.CC)
	mail.BCC = addresses(m.BCC)
	mail.Subject = m.Subject
	mail.Text = m.Text
	mail.HTML = m.HTML
	mail.Category = m.Category
	for k, v := range m.Headers {
		mail.Headers[k] = v
	}
	for k, v := range m.CustomVariables {
		mail.CustomVariables[k] = v
	}

	for _, spec := range m.Attachments {
		attachment, err := spec.attach()
		if err != nil {
			return nil, err
		}
		mail.Attachments = append(mail.Attachments, attachment)
	}

	return mail, nil
}

func (s attachmentSpec) attach() (*mailtrap.Attachment, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	filename := s.Filename
	if filename == "" {
		filename = filepath.Base(s.Path)
	}

	var opts []mailtrap.AttachmentOption
	if s.Type != "" {
		opts = append(opts, mailtrap.WithType(s.Type))
	}
	if s.Disposition != "" {
		opts = append(opts, mailtrap.WithDisposition(s.Disposition))
	}
	if s.ContentID != "" {
		opts = append(opts, mailtrap.WithContentID(s.ContentID))
	}

	return mailtrap.NewAttachmentFromReader(f, filename, opts...)
}

func addresses(specs []addressSpec) []mailtrap.Address {
	out := make([]mailtrap.Address, 0, len(specs))
	for _, s := range specs {
		out = append(out, mailtrap.Address{Email: s.Email, Name: s.Name})
	}
	return out
}
