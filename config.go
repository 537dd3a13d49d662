package mailtrap

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// API hosts. The send host is selected from the bulk/sandbox flags; generic
// resource calls always go to the general API host.
const (
	// SendingAPIHost serves transactional sending.
	SendingAPIHost = "send.api.mailtrap.io"

	// BulkSendingAPIHost serves the higher-throughput bulk stream.
	BulkSendingAPIHost = "bulk.api.mailtrap.io"

	// SandboxAPIHost routes mail into a testing inbox instead of delivering.
	SandboxAPIHost = "sandbox.api.mailtrap.io"

	// GeneralAPIHost serves the management resources: contacts, templates,
	// suppressions, projects.
	GeneralAPIHost = "mailtrap.io"

	// DefaultAPIPort is the HTTPS port used unless overridden.
	DefaultAPIPort = 443
)

// Config holds the client configuration. A Config is consumed once by New
// and is not read again afterwards.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// APIHost overrides the derived send host. It may be a bare hostname or
	// a full base URL including scheme. When empty the host is derived from
	// Bulk and Sandbox.
	APIHost string

	// GeneralHost overrides the management API host.
	GeneralHost string

	// APIPort is the HTTPS port for bare hostnames. Defaults to 443.
	APIPort int

	// Bulk routes sending through the bulk stream. Mutually exclusive with
	// Sandbox.
	Bulk bool

	// Sandbox routes sending into a testing inbox. Requires InboxID.
	Sandbox bool

	// InboxID identifies the sandbox inbox. Required when Sandbox is set.
	InboxID int64

	// UserAgent overrides the User-Agent header sent with every request.
	UserAgent string

	// HTTPClient performs the underlying requests. Defaults to a plain
	// http.Client with no timeout; use the context to bound calls.
	HTTPClient *http.Client

	// Logger receives warnings about failed requests and error payloads
	// inside successful responses. Defaults to a discarding logger.
	Logger *log.Logger
}

// DefaultConfig returns a configuration with the standard hosts and port.
// The API key must still be supplied.
func DefaultConfig() Config {
	return Config{
		GeneralHost: GeneralAPIHost,
		APIPort:     DefaultAPIPort,
		UserAgent:   UserAgent,
	}
}

// Validate checks that the configuration is complete and coherent.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewValidationError("api_key", "api_key is required")
	}
	if c.APIPort <= 0 {
		return NewValidationError("api_port", "api_port must be greater than 0")
	}
	if c.Bulk && c.Sandbox {
		return NewValidationError("bulk", "bulk mode is not applicable for sandbox API")
	}
	if c.Sandbox && c.InboxID == 0 {
		return NewValidationError("inbox_id", "inbox_id is required for sandbox API")
	}
	return nil
}

// selectSendHost derives the send host from the mode flags. An explicit
// APIHost wins.
func (c *Config) selectSendHost() string {
	if c.APIHost != "" {
		return c.APIHost
	}
	switch {
	case c.Sandbox:
		return SandboxAPIHost
	case c.Bulk:
		return BulkSendingAPIHost
	default:
		return SendingAPIHost
	}
}
