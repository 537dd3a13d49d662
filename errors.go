package mailtrap

import (
	"fmt"
	"strings"
)

// APIError is the generic error for failed API requests. More specific
// failure modes are represented by the types embedding it; callers branch
// with errors.As on the kind instead of parsing text.
type APIError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// Messages holds the error messages reported by the API. It is never
	// empty; the display message is the comma-join of its entries.
	Messages []string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// AuthorizationError is returned when the API key is rejected (HTTP 401).
// Not retryable without fixing credentials.
type AuthorizationError struct {
	APIError
}

// RejectionError is returned when the server refuses to process the request
// (HTTP 403). Use the error messages to debug the problem.
//
// *Some* possible reasons:
//   - Account is banned
//   - Domain is not verified
type RejectionError struct {
	APIError
}

// MailSizeError is returned when the mail payload is too large (HTTP 413).
type MailSizeError struct {
	APIError
}

// RateLimitError is returned when the client performs too many requests
// (HTTP 429). This library never retries; backoff is the caller's call.
type RateLimitError struct {
	APIError
}

// InvalidAPIResponseError is returned when a batch response violates the
// endpoint contract (no responses array). It signals a broken server
// response, not a per-recipient failure.
type InvalidAPIResponseError struct {
	APIError
}

// responseError maps a non-2xx HTTP response to the matching error kind.
func responseError(statusCode int, body []byte) error {
	switch {
	case statusCode == 400:
		return &APIError{StatusCode: statusCode, Messages: errorMessages(body, "bad request")}
	case statusCode == 401:
		return &AuthorizationError{APIError{StatusCode: statusCode, Messages: errorMessages(body, "unauthorized")}}
	case statusCode == 403:
		return &RejectionError{APIError{StatusCode: statusCode, Messages: errorMessages(body, "forbidden")}}
	case statusCode == 413:
		return &MailSizeError{APIError{StatusCode: statusCode, Messages: []string{"message too large"}}}
	case statusCode == 429:
		return &RateLimitError{APIError{StatusCode: statusCode, Messages: []string{"too many requests"}}}
	case statusCode >= 400 && statusCode < 500:
		messages := []string{"client error"}
		if len(body) > 0 {
			messages = append(messages, string(body))
		}
		return &APIError{StatusCode: statusCode, Messages: messages}
	case statusCode >= 500 && statusCode < 600:
		return &APIError{StatusCode: statusCode, Messages: []string{"server error"}}
	default:
		return &APIError{
			StatusCode: statusCode,
			Messages:   []string{fmt.Sprintf("unexpected status code=%d", statusCode)},
		}
	}
}

// errorMessages extracts error messages from a response body. The API
// reports errors as a string, a list of strings or a field-keyed object
// under "errors", or as a single "error" string.
func errorMessages(body []byte, fallback string) []string {
	if len(body) == 0 {
		return []string{fallback}
	}

	var payload struct {
		Errors any    `json:"errors"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return []string{fallback}
	}

	var messages []string
	switch errs := payload.Errors.(type) {
	case string:
		messages = append(messages, errs)
	case []any:
		for _, e := range errs {
			messages = append(messages, fmt.Sprintf("%v", e))
		}
	case map[string]any:
		for field, e := range errs {
			messages = append(messages, fmt.Sprintf("%s: %v", field, e))
		}
	}
	if payload.Error != "" {
		messages = append(messages, payload.Error)
	}
	if len(messages) == 0 {
		return []string{fallback}
	}
	return messages
}
