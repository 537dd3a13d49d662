package mailtrap

import (
	"context"
	"strconv"
)

// ContactField is the contact field resource: a typed attribute attached to
// contacts and referenced from templates via its merge tag.
type ContactField struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	DataType string `json:"data_type,omitempty"`
	MergeTag string `json:"merge_tag,omitempty"`
}

// ContactFieldRequest holds the writable contact field attributes.
type ContactFieldRequest struct {
	Name     string `json:"name,omitempty"`
	DataType string `json:"data_type,omitempty"`
	MergeTag string `json:"merge_tag,omitempty"`
}

// ContactFieldsAPI is a thin wrapper over the account contact fields
// resource.
type ContactFieldsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewContactFieldsAPI creates a contact fields API for the given account.
func NewContactFieldsAPI(accountID int64, client ResourceClient) *ContactFieldsAPI {
	return &ContactFieldsAPI{AccountID: accountID, client: client}
}

// List retrieves all contact fields.
func (a *ContactFieldsAPI) List(ctx context.Context) ([]ContactField, error) {
	var fields []ContactField
	if err := a.client.Get(ctx, accountPath(a.AccountID, "contacts/fields"), nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Get retrieves a contact field.
func (a *ContactFieldsAPI) Get(ctx context.Context, fieldID int64) (*ContactField, error) {
	var field ContactField
	if err := a.client.Get(ctx, a.path(fieldID), nil, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// Create creates a new contact field.
func (a *ContactFieldsAPI) Create(ctx context.Context, field ContactFieldRequest) (*ContactField, error) {
	var created ContactField
	if err := a.client.Post(ctx, accountPath(a.AccountID, "contacts/fields"), field, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes a contact field. Only name and merge tag are mutable.
func (a *ContactFieldsAPI) Update(ctx context.Context, fieldID int64, field ContactFieldRequest) (*ContactField, error) {
	var updated ContactField
	if err := a.client.Patch(ctx, a.path(fieldID), field, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a contact field.
func (a *ContactFieldsAPI) Delete(ctx context.Context, fieldID int64) error {
	return a.client.Delete(ctx, a.path(fieldID))
}

func (a *ContactFieldsAPI) path(fieldID int64) string {
	return resourcePath(a.AccountID, "contacts/fields", strconv.FormatInt(fieldID, 10))
}
