package mailtrap

import (
	"context"
)

// Sender is the sending surface of the client. It is satisfied by *Client
// and lets callers swap in a stub for tests.
type Sender interface {
	// Send sends a single email and returns the API result.
	Send(ctx context.Context, mail *Mail) (*SendResponse, error)

	// SendBatch submits a shared base plus per-recipient requests to the
	// batch endpoint. Partial failure within the batch is reported in the
	// response entries, not as an error.
	SendBatch(ctx context.Context, base any, requests []map[string]any) (*BatchResponse, error)
}

// ResourceClient is the generic request surface used by the resource APIs
// (contacts, templates, suppressions, projects). All four verbs target the
// general management host.
type ResourceClient interface {
	Get(ctx context.Context, path string, query map[string]string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

var (
	_ Sender         = (*Client)(nil)
	_ ResourceClient = (*Client)(nil)
)
