// Package mailtrap provides a Go client for the Mailtrap transactional
// email and contact management API.
//
// The client builds sparse JSON payloads from structured models, performs a
// single synchronous HTTPS request per call, and maps HTTP failures into a
// small taxonomy of typed errors so callers can tell retryable conditions
// (rate limits) from fatal ones (authorization, rejection).
//
// # Basic Usage
//
//	client, err := mailtrap.New(mailtrap.Config{APIKey: "your-api-key"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mail := mailtrap.NewMail()
//	mail.From = &mailtrap.Address{Email: "noreply@example.com"}
//	mail.To = []mailtrap.Address{{Email: "user@example.com"}}
//	mail.Subject = "Welcome"
//	mail.Text = "Welcome!"
//
//	result, err := client.Send(context.Background(), mail)
//
// # Sending Modes
//
// The send host is selected from the configuration: transactional by
// default, the bulk stream with WithBulk, or a non-delivering sandbox inbox
// with WithSandbox. Bulk and sandbox are mutually exclusive. Batch sending
// via SendBatch requires the bulk (or sandbox) host.
//
// # Error Handling
//
// Failed requests return one of *APIError, *AuthorizationError,
// *RejectionError, *MailSizeError or *RateLimitError; invalid caller input
// returns *ValidationError before any network call. The library never
// retries: backoff on RateLimitError is left to the caller, as is bounding
// calls with a context deadline.
//
// # Resources
//
// Thin wrappers over the management API (contacts, contact lists and
// fields, email templates, projects, suppressions) are built on the
// client's generic Get/Post/Patch/Delete verbs.
//
// All client methods are safe for concurrent use.
package mailtrap
