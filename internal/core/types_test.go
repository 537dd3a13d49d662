package core

import (
	"encoding/base64"
	"sort"
	"testing"
)

func serializedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sameKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMailSerializeContentMessage(t *testing.T) {
	t.Parallel()

	m := NewMail()
	m.From = &Address{Email: "sender@example.com", Name: "Sender"}
	m.To = append(m.To, Address{Email: "to@example.com"})
	m.Subject = "Hello"
	m.Text = "Body"

	got := m.Serialize()

	// Constructor-initialized collections serialize even when empty; unset
	// scalars and nil pointers are omitted.
	want := []string{"attachments", "cc", "bcc", "custom_variables", "from", "headers", "subject", "text", "to"}
	sort.Strings(want)
	if keys := serializedKeys(got); !sameKeys(keys, want) {
		t.Errorf("keys: got %v, want %v", keys, want)
	}

	from, ok := got["from"].(map[string]any)
	if !ok {
		t.Fatalf("from: got %T, want map", got["from"])
	}
	if from["email"] != "sender@example.com" || from["name"] != "Sender" {
		t.Errorf("from: got %v", from)
	}

	to, ok := got["to"].([]map[string]any)
	if !ok || len(to) != 1 {
		t.Fatalf("to: got %v, want one entry", got["to"])
	}
	if to[0]["email"] != "to@example.com" {
		t.Errorf("to[0].email: got %v, want %q", to[0]["email"], "to@example.com")
	}
	if _, named := to[0]["name"]; named {
		t.Error("to[0] has a name key for an empty name")
	}

	cc, ok := got["cc"].([]map[string]any)
	if !ok || len(cc) != 0 {
		t.Errorf("cc: got %v, want empty list", got["cc"])
	}
}

func TestMailSerializeZeroValue(t *testing.T) {
	t.Parallel()

	// A zero Mail, without the constructor defaults, serializes to nothing.
	var m Mail
	if got := m.Serialize(); len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}

func TestMailSerializeTemplateMessage(t *testing.T) {
	t.Parallel()

	m := NewMailFromTemplate()
	m.From = &Address{Email: "sender@example.com"}
	m.TemplateUUID = "uuid-1234"

	got := m.Serialize()
	if got["template_uuid"] != "uuid-1234" {
		t.Errorf("template_uuid: got %v, want %q", got["template_uuid"], "uuid-1234")
	}
	vars, ok := got["template_variables"].(map[string]any)
	if !ok {
		t.Fatalf("template_variables: got %T, want map", got["template_variables"])
	}
	if len(vars) != 0 {
		t.Errorf("template_variables: got %v, want empty", vars)
	}

	// The content constructor leaves template variables out entirely.
	if _, ok := NewMail().Serialize()["template_variables"]; ok {
		t.Error("NewMail serialized template_variables")
	}
}

func TestMailAddAttachment(t *testing.T) {
	t.Parallel()

	m := NewMail()
	content := base64.StdEncoding.EncodeToString([]byte("report"))

	a, err := m.AddAttachment(content, "report.pdf", WithType("application/pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Attachments) != 1 || m.Attachments[0] != a {
		t.Fatalf("attachment not appended: %v", m.Attachments)
	}

	if _, err := m.AddAttachment("not-base64!", "bad.bin"); err == nil {
		t.Error("invalid content: got nil error")
	}
	if len(m.Attachments) != 1 {
		t.Errorf("failed attachment was appended: %d", len(m.Attachments))
	}
}

func TestMailSetAttachments(t *testing.T) {
	t.Parallel()

	m := NewMail()
	content := base64.StdEncoding.EncodeToString([]byte("data"))

	err := m.SetAttachments([]*Attachment{
		{Content: content, Filename: "a.bin"},
		{Content: content, Filename: "b.bin", Type: "application/octet-stream"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Attachments) != 2 {
		t.Fatalf("Attachments: got %d, want 2", len(m.Attachments))
	}
	if m.Attachments[1].Type != "application/octet-stream" {
		t.Errorf("Type: got %q", m.Attachments[1].Type)
	}

	err = m.SetAttachments([]*Attachment{{Content: "broken!", Filename: "c.bin"}})
	if err == nil {
		t.Fatal("invalid content: got nil error")
	}
	if len(m.Attachments) != 2 {
		t.Errorf("failed SetAttachments replaced the list: %d", len(m.Attachments))
	}
}

func TestMailToBatchDropsRecipients(t *testing.T) {
	t.Parallel()

	m := NewMail()
	m.From = &Address{Email: "sender@example.com"}
	m.To = append(m.To, Address{Email: "to@example.com"})
	m.CC = append(m.CC, Address{Email: "cc@example.com"})
	m.Subject = "Shared"
	m.Text = "Shared body"

	base := m.ToBatch()
	got := base.Serialize()

	for _, key := range []string{"to", "cc", "bcc"} {
		if _, ok := got[key]; ok {
			t.Errorf("base serialized %q", key)
		}
	}
	if got["subject"] != "Shared" {
		t.Errorf("subject: got %v, want %q", got["subject"], "Shared")
	}
}

func TestNewBatchBaseValidatesSender(t *testing.T) {
	t.Parallel()

	if _, err := NewBatchBase(Address{Email: "no-at-sign"}); err == nil {
		t.Error("invalid sender: got nil error")
	}

	base, err := NewBatchBase(Address{Email: "sender@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := base.Serialize()
	want := []string{"attachments", "custom_variables", "from", "headers"}
	if keys := serializedKeys(got); !sameKeys(keys, want) {
		t.Errorf("keys: got %v, want %v", keys, want)
	}
}
