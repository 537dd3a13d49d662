package mailtrap

import (
	"fmt"
	"net/url"
)

// accountPath builds the account-scoped base path shared by the resource
// APIs on the general management host.
func accountPath(accountID int64, resource string) string {
	return fmt.Sprintf("/api/accounts/%d/%s", accountID, resource)
}

func resourcePath(accountID int64, resource, id string) string {
	return accountPath(accountID, resource) + "/" + url.PathEscape(id)
}
