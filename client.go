package mailtrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/sendgrid/rest"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Mailtrap API. Send and SendBatch go to the configured
// send host; the generic verbs go to the general management host. Every
// call is a single synchronous HTTPS request: there is no retry logic, and
// failures surface immediately as typed errors.
//
// All methods are safe for concurrent use.
type Client struct {
	config      Config
	rest        *rest.Client
	tracer      trace.Tracer
	logger      *log.Logger
	sendHost    string
	generalHost string
}

// New creates a client from the given configuration after applying the
// functional options.
func New(config Config, opts ...Option) (*Client, error) {
	for _, opt := range opts {
		opt(&config)
	}

	if config.APIPort == 0 {
		config.APIPort = DefaultAPIPort
	}
	if config.GeneralHost == "" {
		config.GeneralHost = GeneralAPIHost
	}
	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config:      config,
		rest:        &rest.Client{HTTPClient: config.HTTPClient},
		tracer:      otel.Tracer("github.com/mailtrap/mailtrap-go"),
		logger:      config.Logger,
		sendHost:    config.selectSendHost(),
		generalHost: config.GeneralHost,
	}, nil
}

// NewFromEnv creates a client with the API key read from the
// MAILTRAP_API_KEY environment variable. The environment is read here, in
// this boundary constructor, and nowhere else in the library.
func NewFromEnv(opts ...Option) (*Client, error) {
	config := DefaultConfig()
	config.APIKey = os.Getenv("MAILTRAP_API_KEY")
	return New(config, opts...)
}

// AccountIDFromEnv reads the account ID for the resource APIs from the
// MAILTRAP_ACCOUNT_ID environment variable.
func AccountIDFromEnv() (int64, error) {
	raw := os.Getenv("MAILTRAP_ACCOUNT_ID")
	if raw == "" {
		return 0, NewValidationError("account_id", "MAILTRAP_ACCOUNT_ID is not set")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewValidationError("account_id", fmt.Sprintf("MAILTRAP_ACCOUNT_ID is not a number: %q", raw))
	}
	return id, nil
}

// Send sends a single email and returns the API result.
func (c *Client) Send(ctx context.Context, mail *Mail) (*SendResponse, error) {
	ctx, span := c.tracer.Start(ctx, "mailtrap.Client.Send")
	defer span.End()

	if mail == nil {
		err := NewValidationError("mail", "mail is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	attrs := []attribute.KeyValue{
		attribute.String("mailer.subject", mail.Subject),
		attribute.Int("mailer.recipients", len(mail.To)+len(mail.CC)+len(mail.BCC)),
		attribute.String("mailer.host", c.sendHost),
	}
	if mail.From != nil {
		attrs = append(attrs, attribute.String("mailer.from", mail.From.Email))
	}
	span.SetAttributes(attrs...)

	body, err := json.Marshal(mail.Serialize())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "serialization failed")
		return nil, fmt.Errorf("serialize mail: %w", err)
	}

	raw, err := c.do(ctx, rest.Post, c.baseURL(c.sendHost)+c.sendPath(), body, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return nil, err
	}

	var result SendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode failed")
			return nil, fmt.Errorf("decode send response: %w", err)
		}
	}

	span.SetAttributes(attribute.Int("mailer.message_ids", len(result.MessageIDs)))
	span.SetStatus(codes.Ok, "email sent")
	return &result, nil
}

// SendBatch merges the shared base with the per-recipient requests and
// submits them to the batch endpoint. See BatchSender for the validation
// rules.
func (c *Client) SendBatch(ctx context.Context, base any, requests []map[string]any) (*BatchResponse, error) {
	return NewBatchSender(c).SendEmails(ctx, base, requests)
}

// Get performs a GET against the general API host and decodes the JSON
// response into out when out is non-nil.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.call(ctx, rest.Get, path, nil, query, out)
}

// Post performs a POST against the general API host.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.callWithBody(ctx, rest.Post, path, body, out)
}

// Patch performs a PATCH against the general API host.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.callWithBody(ctx, rest.Patch, path, body, out)
}

// Delete performs a DELETE against the general API host.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, rest.Delete, path, nil, nil, nil)
}

// batchSend posts the prepared batch payload to the batch endpoint on the
// send host.
func (c *Client) batchSend(ctx context.Context, payload map[string]any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serialize batch payload: %w", err)
	}
	return c.do(ctx, rest.Post, c.baseURL(c.sendHost)+c.batchPath(), body, nil)
}

// bulkHost reports whether the client is routed at a host that accepts
// batch sends: the bulk stream, or the sandbox when testing.
func (c *Client) bulkHost() bool {
	if c.config.Bulk || c.config.Sandbox {
		return true
	}
	return strings.Contains(c.sendHost, BulkSendingAPIHost)
}

func (c *Client) callWithBody(ctx context.Context, method rest.Method, path string, body, out any) error {
	var encoded []byte
	if body != nil {
		var err error
		if encoded, err = json.Marshal(body); err != nil {
			return fmt.Errorf("serialize request body: %w", err)
		}
	}
	return c.call(ctx, method, path, encoded, nil, out)
}

func (c *Client) call(ctx context.Context, method rest.Method, path string, body []byte, query map[string]string, out any) error {
	raw, err := c.do(ctx, method, c.baseURL(c.generalHost)+path, body, query)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs one request and classifies the response. A 2xx response
// returns the raw body (nil for 204/empty); anything else maps through the
// error taxonomy.
func (c *Client) do(ctx context.Context, method rest.Method, url string, body []byte, query map[string]string) ([]byte, error) {
	request := rest.Request{
		Method:      method,
		BaseURL:     url,
		Headers:     c.headers(),
		Body:        body,
		QueryParams: query,
	}

	response, err := c.rest.SendWithContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, url, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		err := responseError(response.StatusCode, []byte(response.Body))
		c.logger.Warn("request failed", "method", string(method), "url", url,
			"status", response.StatusCode, "error", err.Error())
		return nil, err
	}

	if response.StatusCode == http.StatusNoContent || response.Body == "" {
		return nil, nil
	}

	raw := []byte(response.Body)
	c.warnEmbeddedErrors(raw)
	return raw, nil
}

// warnEmbeddedErrors surfaces error payloads the API sometimes embeds in
// otherwise successful responses.
func (c *Client) warnEmbeddedErrors(body []byte) {
	var payload map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return
	}
	if errs, ok := payload["errors"]; ok {
		c.logger.Warn("API errors in response", "errors", string(errs))
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.config.APIKey,
		"Content-Type":  "application/json",
		"User-Agent":    c.config.UserAgent,
	}
}

// baseURL builds the scheme://host:port prefix for a configured host. Hosts
// already carrying a scheme are used as-is.
func (c *Client) baseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	if c.config.APIPort != DefaultAPIPort {
		return fmt.Sprintf("https://%s:%d", host, c.config.APIPort)
	}
	return "https://" + host
}

func (c *Client) sendPath() string {
	if c.config.Sandbox {
		return fmt.Sprintf("/api/send/%d", c.config.InboxID)
	}
	return "/api/send"
}

func (c *Client) batchPath() string {
	if c.config.Sandbox {
		return fmt.Sprintf("/api/batch/%d", c.config.InboxID)
	}
	return "/api/batch"
}
