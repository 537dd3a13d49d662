package mailtrap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, opts ...Option) *Client {
	t.Helper()

	client, err := New(Config{APIKey: "test-key"}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func testMail() *Mail {
	m := NewMail()
	m.From = &Address{Email: "sender@example.com", Name: "Sender"}
	m.To = append(m.To, Address{Email: "to@example.com"})
	m.Subject = "Hello"
	m.Text = "Body"
	return m
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		config Config
		opts   []Option
	}{
		{"missing api key", Config{}, nil},
		{"bulk with sandbox", Config{APIKey: "key"}, []Option{WithBulk(), WithSandbox(1)}},
		{"sandbox without inbox", Config{APIKey: "key", Sandbox: true}, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tc.config, tc.opts...)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("got %v, want *ValidationError", err)
			}
		})
	}
}

func TestClientSendHostSelection(t *testing.T) {
	t.Parallel()

	if got := testClient(t).sendHost; got != SendingAPIHost {
		t.Errorf("default: got %q, want %q", got, SendingAPIHost)
	}
	if got := testClient(t, WithBulk()).sendHost; got != BulkSendingAPIHost {
		t.Errorf("bulk: got %q, want %q", got, BulkSendingAPIHost)
	}
	if got := testClient(t, WithSandbox(42)).sendHost; got != SandboxAPIHost {
		t.Errorf("sandbox: got %q, want %q", got, SandboxAPIHost)
	}
}

func TestClientBaseURL(t *testing.T) {
	t.Parallel()

	client := testClient(t)
	if got := client.baseURL(SendingAPIHost); got != "https://send.api.mailtrap.io" {
		t.Errorf("default port: got %q", got)
	}

	client = testClient(t, WithAPIPort(8443))
	if got := client.baseURL(SendingAPIHost); got != "https://send.api.mailtrap.io:8443" {
		t.Errorf("custom port: got %q", got)
	}

	if got := client.baseURL("http://127.0.0.1:9000/"); got != "http://127.0.0.1:9000" {
		t.Errorf("full URL: got %q", got)
	}
}

func TestClientSend(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %q, want POST", r.Method)
		}
		if r.URL.Path != "/api/send" {
			t.Errorf("path: got %q, want /api/send", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization: got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type: got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("User-Agent: got %q, want %q", got, UserAgent)
		}

		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		if _, ok := payload["from"]; !ok {
			t.Error("payload is missing from")
		}
		if payload["subject"] != "Hello" {
			t.Errorf("subject: got %v, want %q", payload["subject"], "Hello")
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"message_ids":["id-1"]}`)
	}))
	defer server.Close()

	client := testClient(t, WithAPIHost(server.URL))

	result, err := client.Send(context.Background(), testMail())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !result.Success {
		t.Error("Success: got false, want true")
	}
	if len(result.MessageIDs) != 1 || result.MessageIDs[0] != "id-1" {
		t.Errorf("MessageIDs: got %v, want [id-1]", result.MessageIDs)
	}
}

func TestClientSendNilMail(t *testing.T) {
	t.Parallel()

	_, err := testClient(t).Send(context.Background(), nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("got %v, want *ValidationError", err)
	}
}

func TestClientSendSandboxPath(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/send/42" {
			t.Errorf("path: got %q, want /api/send/42", r.URL.Path)
		}
		io.WriteString(w, `{"success":true}`)
	}))
	defer server.Close()

	client := testClient(t, WithSandbox(42), WithAPIHost(server.URL))

	result, err := client.Send(context.Background(), testMail())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(result.MessageIDs) != 0 {
		t.Errorf("MessageIDs: got %v, want none", result.MessageIDs)
	}
}

func TestClientSendErrorMapping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"errors":["Incorrect API token"]}`)
	}))
	defer server.Close()

	client := testClient(t, WithAPIHost(server.URL))

	_, err := client.Send(context.Background(), testMail())
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want *AuthorizationError", err)
	}
	if got := err.Error(); got != "Incorrect API token" {
		t.Errorf("Error(): got %q, want %q", got, "Incorrect API token")
	}
}

func TestClientResourceVerbs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path != "/api/accounts/1/things" {
				t.Errorf("path: got %q", r.URL.Path)
			}
			if got := r.URL.Query().Get("email"); got != "a@b.c" {
				t.Errorf("query email: got %q, want %q", got, "a@b.c")
			}
			io.WriteString(w, `[{"id":7}]`)
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Errorf("body is not JSON: %v", err)
			}
			if payload["name"] != "new" {
				t.Errorf("name: got %v, want %q", payload["name"], "new")
			}
			io.WriteString(w, `{"id":8,"name":"new"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %q", r.Method)
		}
	}))
	defer server.Close()

	client := testClient(t, WithGeneralHost(server.URL))
	ctx := context.Background()

	var list []struct {
		ID int64 `json:"id"`
	}
	if err := client.Get(ctx, "/api/accounts/1/things", map[string]string{"email": "a@b.c"}, &list); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(list) != 1 || list[0].ID != 7 {
		t.Errorf("Get result: got %v", list)
	}

	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := client.Post(ctx, "/api/accounts/1/things", map[string]any{"name": "new"}, &created); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if created.ID != 8 || created.Name != "new" {
		t.Errorf("Post result: got %+v", created)
	}

	if err := client.Delete(ctx, "/api/accounts/1/things/8"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
