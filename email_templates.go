package mailtrap

import (
	"context"
	"strconv"
)

// EmailTemplate is the server-stored template resource. Messages reference
// it by UUID through the template_uuid payload field.
type EmailTemplate struct {
	ID        int64  `json:"id,omitempty"`
	UUID      string `json:"uuid,omitempty"`
	Name      string `json:"name,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Category  string `json:"category,omitempty"`
	BodyHTML  string `json:"body_html,omitempty"`
	BodyText  string `json:"body_text,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// EmailTemplateRequest holds the writable template attributes.
type EmailTemplateRequest struct {
	Name     string `json:"name,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Category string `json:"category,omitempty"`
	BodyHTML string `json:"body_html,omitempty"`
	BodyText string `json:"body_text,omitempty"`
}

// EmailTemplatesAPI is a thin wrapper over the account email templates
// resource.
type EmailTemplatesAPI struct {
	AccountID int64

	client ResourceClient
}

// NewEmailTemplatesAPI creates an email templates API for the given
// account.
func NewEmailTemplatesAPI(accountID int64, client ResourceClient) *EmailTemplatesAPI {
	return &EmailTemplatesAPI{AccountID: accountID, client: client}
}

// List retrieves all email templates.
func (a *EmailTemplatesAPI) List(ctx context.Context) ([]EmailTemplate, error) {
	var templates []EmailTemplate
	if err := a.client.Get(ctx, accountPath(a.AccountID, "email_templates"), nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Get retrieves an email template.
func (a *EmailTemplatesAPI) Get(ctx context.Context, templateID int64) (*EmailTemplate, error) {
	var template EmailTemplate
	if err := a.client.Get(ctx, a.path(templateID), nil, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// Create creates a new email template.
func (a *EmailTemplatesAPI) Create(ctx context.Context, template EmailTemplateRequest) (*EmailTemplate, error) {
	var created EmailTemplate
	body := map[string]any{"email_template": template}
	if err := a.client.Post(ctx, accountPath(a.AccountID, "email_templates"), body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes an existing email template.
func (a *EmailTemplatesAPI) Update(ctx context.Context, templateID int64, template EmailTemplateRequest) (*EmailTemplate, error) {
	var updated EmailTemplate
	body := map[string]any{"email_template": template}
	if err := a.client.Patch(ctx, a.path(templateID), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an email template.
func (a *EmailTemplatesAPI) Delete(ctx context.Context, templateID int64) error {
	return a.client.Delete(ctx, a.path(templateID))
}

func (a *EmailTemplatesAPI) path(templateID int64) string {
	return resourcePath(a.AccountID, "email_templates", strconv.FormatInt(templateID, 10))
}
