package mailtrap

import (
	"context"
	"strconv"
)

// ContactList is the contact list resource.
type ContactList struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ContactListsAPI is a thin wrapper over the account contact lists resource.
type ContactListsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewContactListsAPI creates a contact lists API for the given account.
func NewContactListsAPI(accountID int64, client ResourceClient) *ContactListsAPI {
	return &ContactListsAPI{AccountID: accountID, client: client}
}

// List retrieves all contact lists.
func (a *ContactListsAPI) List(ctx context.Context) ([]ContactList, error) {
	var lists []ContactList
	if err := a.client.Get(ctx, accountPath(a.AccountID, "contacts/lists"), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Get retrieves a contact list.
func (a *ContactListsAPI) Get(ctx context.Context, listID int64) (*ContactList, error) {
	var list ContactList
	if err := a.client.Get(ctx, a.path(listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create creates a new contact list.
func (a *ContactListsAPI) Create(ctx context.Context, name string) (*ContactList, error) {
	var list ContactList
	body := map[string]any{"name": name}
	if err := a.client.Post(ctx, accountPath(a.AccountID, "contacts/lists"), body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update renames a contact list.
func (a *ContactListsAPI) Update(ctx context.Context, listID int64, name string) (*ContactList, error) {
	var list ContactList
	body := map[string]any{"name": name}
	if err := a.client.Patch(ctx, a.path(listID), body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a contact list.
func (a *ContactListsAPI) Delete(ctx context.Context, listID int64) error {
	return a.client.Delete(ctx, a.path(listID))
}

func (a *ContactListsAPI) path(listID int64) string {
	return resourcePath(a.AccountID, "contacts/lists", strconv.FormatInt(listID, 10))
}
