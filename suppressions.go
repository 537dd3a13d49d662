package mailtrap

import (
	"context"
)

// Suppression is a server-side record preventing future sends to an
// address.
type Suppression struct {
	ID                     string `json:"id,omitempty"`
	Type                   string `json:"type,omitempty"`
	CreatedAt              string `json:"created_at,omitempty"`
	Email                  string `json:"email,omitempty"`
	SendingStream          string `json:"sending_stream,omitempty"`
	DomainName             string `json:"domain_name,omitempty"`
	MessageBounceCategory  string `json:"message_bounce_category,omitempty"`
	MessageCategory        string `json:"message_category,omitempty"`
	MessageClientIP        string `json:"message_client_ip,omitempty"`
	MessageCreatedAt       string `json:"message_created_at,omitempty"`
	MessageESPResponse     string `json:"message_esp_response,omitempty"`
	MessageESPServerType   string `json:"message_esp_server_type,omitempty"`
	MessageOutgoingIP      string `json:"message_outgoing_ip,omitempty"`
	MessageRecipientMXName string `json:"message_recipient_mx_name,omitempty"`
	MessageSenderEmail     string `json:"message_sender_email,omitempty"`
	MessageSubject         string `json:"message_subject,omitempty"`
}

// SuppressionsAPI is a thin wrapper over the account suppressions resource.
type SuppressionsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewSuppressionsAPI creates a suppressions API for the given account.
func NewSuppressionsAPI(accountID int64, client ResourceClient) *SuppressionsAPI {
	return &SuppressionsAPI{AccountID: accountID, client: client}
}

// List retrieves suppressions, optionally filtered by email.
func (a *SuppressionsAPI) List(ctx context.Context, email string) ([]Suppression, error) {
	var query map[string]string
	if email != "" {
		query = map[string]string{"email": email}
	}

	var suppressions []Suppression
	if err := a.client.Get(ctx, accountPath(a.AccountID, "suppressions"), query, &suppressions); err != nil {
		return nil, err
	}
	return suppressions, nil
}

// Delete removes a suppression, re-allowing sends to its address.
func (a *SuppressionsAPI) Delete(ctx context.Context, suppressionID string) error {
	return a.client.Delete(ctx, resourcePath(a.AccountID, "suppressions", suppressionID))
}
