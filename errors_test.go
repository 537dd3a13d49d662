package mailtrap

import (
	"errors"
	"testing"
)

func TestResponseErrorKinds(t *testing.T) {
	t.Parallel()

	t.Run("401 authorization", func(t *testing.T) {
		t.Parallel()

		err := responseError(401, []byte(`{"errors":["Incorrect API token"]}`))
		var authErr *AuthorizationError
		if !errors.As(err, &authErr) {
			t.Fatalf("got %T, want *AuthorizationError", err)
		}
		if authErr.StatusCode != 401 {
			t.Errorf("StatusCode: got %d, want 401", authErr.StatusCode)
		}
		if got := err.Error(); got != "Incorrect API token" {
			t.Errorf("Error(): got %q, want %q", got, "Incorrect API token")
		}
	})

	t.Run("403 rejection", func(t *testing.T) {
		t.Parallel()

		err := responseError(403, []byte(`{"errors":"Account is banned"}`))
		var rejErr *RejectionError
		if !errors.As(err, &rejErr) {
			t.Fatalf("got %T, want *RejectionError", err)
		}
		if got := err.Error(); got != "Account is banned" {
			t.Errorf("Error(): got %q, want %q", got, "Account is banned")
		}
	})

	t.Run("413 mail size", func(t *testing.T) {
		t.Parallel()

		err := responseError(413, nil)
		var sizeErr *MailSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("got %T, want *MailSizeError", err)
		}
		if got := err.Error(); got != "message too large" {
			t.Errorf("Error(): got %q, want %q", got, "message too large")
		}
	})

	t.Run("429 rate limit", func(t *testing.T) {
		t.Parallel()

		err := responseError(429, nil)
		var rateErr *RateLimitError
		if !errors.As(err, &rateErr) {
			t.Fatalf("got %T, want *RateLimitError", err)
		}
		if got := err.Error(); got != "too many requests" {
			t.Errorf("Error(): got %q, want %q", got, "too many requests")
		}
	})
}

func TestResponseErrorGeneric(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"400 with messages", 400, `{"errors":["subject is required"]}`, "subject is required"},
		{"400 empty body", 400, "", "bad request"},
		{"404 with body", 404, "Not Found", "client error, Not Found"},
		{"404 empty body", 404, "", "client error"},
		{"500", 500, "boom", "server error"},
		{"302 unexpected", 302, "", "unexpected status code=302"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := responseError(tc.status, []byte(tc.body))
			if err == nil {
				t.Fatal("got nil error")
			}
			if got := err.Error(); got != tc.want {
				t.Errorf("Error(): got %q, want %q", got, tc.want)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("got %T, not an *APIError", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("StatusCode: got %d, want %d", apiErr.StatusCode, tc.status)
			}
		})
	}
}

func TestErrorMessagesShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want []string
	}{
		{"string errors", `{"errors":"one"}`, []string{"one"}},
		{"list errors", `{"errors":["one","two"]}`, []string{"one", "two"}},
		{"single error key", `{"error":"denied"}`, []string{"denied"}},
		{"unparseable", `<html>`, []string{"fallback"}},
		{"empty object", `{}`, []string{"fallback"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := errorMessages([]byte(tc.body), "fallback")
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("messages[%d]: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestErrorMessagesFieldObject(t *testing.T) {
	t.Parallel()

	got := errorMessages([]byte(`{"errors":{"base":["from is missing"]}}`), "fallback")
	if len(got) != 1 {
		t.Fatalf("got %v, want one message", got)
	}
	if got[0] != "base: [from is missing]" {
		t.Errorf("got %q, want %q", got[0], "base: [from is missing]")
	}
}
