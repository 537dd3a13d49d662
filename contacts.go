package mailtrap

import (
	"context"
	"fmt"
)

// Contact is the contact resource returned by the API.
type Contact struct {
	ID        string         `json:"id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	ListIDs   []int64        `json:"list_ids,omitempty"`
	Status    string         `json:"status,omitempty"`
	CreatedAt int64          `json:"created_at,omitempty"`
	UpdatedAt int64          `json:"updated_at,omitempty"`

	// Action reports what an upsert did: "created" or "updated".
	Action string `json:"action,omitempty"`
}

// NewlyCreated reports whether the contact was created rather than updated.
func (c Contact) NewlyCreated() bool {
	// An empty action usually means the contact came from a plain create.
	return c.Action == "" || c.Action == "created"
}

// ContactRequest holds the writable contact fields.
type ContactRequest struct {
	Email        string         `json:"email,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
	ListIDs      []int64        `json:"list_ids,omitempty"`
	Unsubscribed *bool          `json:"unsubscribed,omitempty"`
}

// ContactsAPI is a thin wrapper over the account contacts resource.
type ContactsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewContactsAPI creates a contacts API for the given account.
func NewContactsAPI(accountID int64, client ResourceClient) *ContactsAPI {
	return &ContactsAPI{AccountID: accountID, client: client}
}

// Get retrieves a contact by ID or email address.
func (a *ContactsAPI) Get(ctx context.Context, contactID string) (*Contact, error) {
	return a.request(ctx, "GET", contactID, nil)
}

// Create creates a new contact.
func (a *ContactsAPI) Create(ctx context.Context, contact ContactRequest) (*Contact, error) {
	if err := AssertEmail(contact.Email, "email"); err != nil {
		return nil, err
	}
	return a.request(ctx, "POST", "", map[string]any{"contact": contact})
}

// Upsert updates an existing contact or creates it when missing.
func (a *ContactsAPI) Upsert(ctx context.Context, contactID string, contact ContactRequest) (*Contact, error) {
	return a.request(ctx, "PATCH", contactID, map[string]any{"contact": contact})
}

// Delete removes a contact.
func (a *ContactsAPI) Delete(ctx context.Context, contactID string) error {
	return a.client.Delete(ctx, resourcePath(a.AccountID, "contacts", contactID))
}

// AddToLists adds the contact to the given contact lists.
func (a *ContactsAPI) AddToLists(ctx context.Context, contactID string, listIDs []int64) (*Contact, error) {
	return a.request(ctx, "PATCH", contactID, map[string]any{
		"contact": map[string]any{"list_ids_included": listIDs},
	})
}

// RemoveFromLists removes the contact from the given contact lists.
func (a *ContactsAPI) RemoveFromLists(ctx context.Context, contactID string, listIDs []int64) (*Contact, error) {
	return a.request(ctx, "PATCH", contactID, map[string]any{
		"contact": map[string]any{"list_ids_excluded": listIDs},
	})
}

// request performs one contacts call and unwraps the data/action envelope
// the contacts endpoints use.
func (a *ContactsAPI) request(ctx context.Context, method, contactID string, body any) (*Contact, error) {
	path := accountPath(a.AccountID, "contacts")
	if contactID != "" {
		path = resourcePath(a.AccountID, "contacts", contactID)
	}

	var envelope struct {
		Data   Contact `json:"data"`
		Action string  `json:"action"`
	}

	var err error
	switch method {
	case "GET":
		err = a.client.Get(ctx, path, nil, &envelope)
	case "POST":
		err = a.client.Post(ctx, path, body, &envelope)
	case "PATCH":
		err = a.client.Patch(ctx, path, body, &envelope)
	default:
		err = fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return nil, err
	}

	contact := envelope.Data
	if envelope.Action != "" {
		contact.Action = envelope.Action
	}
	return &contact, nil
}
