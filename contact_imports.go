package mailtrap

import (
	"context"
	"fmt"
)

// MaxImportContacts caps the number of contacts per import request.
const MaxImportContacts = 50000

// ContactImport is the contact import resource. Imports run
// asynchronously server-side; poll Get until Status is finished or failed.
type ContactImport struct {
	ID                     int64  `json:"id,omitempty"`
	Status                 string `json:"status,omitempty"`
	CreatedContactsCount   int64  `json:"created_contacts_count,omitempty"`
	UpdatedContactsCount   int64  `json:"updated_contacts_count,omitempty"`
	ContactsOverLimitCount int64  `json:"contacts_over_limit_count,omitempty"`
}

// ImportContact is one row of an import request.
type ImportContact struct {
	Email           string         `json:"email"`
	Fields          map[string]any `json:"fields,omitempty"`
	ListIDsIncluded []int64        `json:"list_ids_included,omitempty"`
	ListIDsExcluded []int64        `json:"list_ids_excluded,omitempty"`
}

// ImportRequest accumulates contacts for a bulk import, deduplicating by
// email. Methods return the request for chaining.
type ImportRequest struct {
	order []string
	data  map[string]*ImportContact
}

// NewImportRequest creates an empty import request.
func NewImportRequest() *ImportRequest {
	return &ImportRequest{data: map[string]*ImportContact{}}
}

// Upsert creates or updates a contact row, merging fields.
func (r *ImportRequest) Upsert(email string, fields map[string]any) *ImportRequest {
	contact := r.contact(email)
	if contact.Fields == nil {
		contact.Fields = map[string]any{}
	}
	for k, v := range fields {
		contact.Fields[k] = v
	}
	return r
}

// AddToLists marks the contact for inclusion in the given lists.
func (r *ImportRequest) AddToLists(email string, listIDs ...int64) *ImportRequest {
	contact := r.contact(email)
	contact.ListIDsIncluded = mergeListIDs(contact.ListIDsIncluded, listIDs)
	return r
}

// RemoveFromLists marks the contact for exclusion from the given lists.
func (r *ImportRequest) RemoveFromLists(email string, listIDs ...int64) *ImportRequest {
	contact := r.contact(email)
	contact.ListIDsExcluded = mergeListIDs(contact.ListIDsExcluded, listIDs)
	return r
}

// Contacts returns the accumulated rows in insertion order.
func (r *ImportRequest) Contacts() []ImportContact {
	out := make([]ImportContact, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, *r.data[email])
	}
	return out
}

func (r *ImportRequest) contact(email string) *ImportContact {
	if c, ok := r.data[email]; ok {
		return c
	}
	c := &ImportContact{Email: email}
	r.data[email] = c
	r.order = append(r.order, email)
	return c
}

func mergeListIDs(existing, added []int64) []int64 {
	seen := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	for _, id := range added {
		if _, ok := seen[id]; !ok {
			existing = append(existing, id)
			seen[id] = struct{}{}
		}
	}
	return existing
}

// ContactImportsAPI is a thin wrapper over the account contact imports
// resource.
type ContactImportsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewContactImportsAPI creates a contact imports API for the given account.
func NewContactImportsAPI(accountID int64, client ResourceClient) *ContactImportsAPI {
	return &ContactImportsAPI{AccountID: accountID, client: client}
}

// Get retrieves a contact import.
func (a *ContactImportsAPI) Get(ctx context.Context, importID int64) (*ContactImport, error) {
	var imp ContactImport
	path := accountPath(a.AccountID, "contacts/imports") + fmt.Sprintf("/%d", importID)
	if err := a.client.Get(ctx, path, nil, &imp); err != nil {
		return nil, err
	}
	return &imp, nil
}

// Import starts an import of the given contacts. Every row is validated
// locally before the request is made.
func (a *ContactImportsAPI) Import(ctx context.Context, contacts []ImportContact) (*ContactImport, error) {
	if len(contacts) == 0 {
		return nil, NewValidationError("contacts", "must be a non-empty list")
	}
	if len(contacts) > MaxImportContacts {
		return nil, NewValidationError("contacts", fmt.Sprintf("too many contacts in import: max %d allowed", MaxImportContacts))
	}
	for i, contact := range contacts {
		if !ValidEmail(contact.Email) {
			return nil, NewValidationError("contacts", fmt.Sprintf("invalid email in contact #%d", i+1))
		}
	}

	var imp ContactImport
	body := map[string]any{"contacts": contacts}
	if err := a.client.Post(ctx, accountPath(a.AccountID, "contacts/imports"), body, &imp); err != nil {
		return nil, err
	}
	return &imp, nil
}
