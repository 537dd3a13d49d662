package mailtrap

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBulk routes sending through the bulk stream. Bulk is mutually
// exclusive with sandbox mode.
func WithBulk() Option {
	return func(c *Config) {
		c.Bulk = true
	}
}

// WithSandbox routes sending into the given testing inbox instead of
// delivering mail.
func WithSandbox(inboxID int64) Option {
	return func(c *Config) {
		c.Sandbox = true
		c.InboxID = inboxID
	}
}

// WithAPIHost overrides the derived send host. The value may be a bare
// hostname or a full base URL including scheme.
func WithAPIHost(host string) Option {
	return func(c *Config) {
		c.APIHost = host
	}
}

// WithGeneralHost overrides the management API host.
func WithGeneralHost(host string) Option {
	return func(c *Config) {
		c.GeneralHost = host
	}
}

// WithAPIPort sets the HTTPS port used for bare hostnames.
func WithAPIPort(port int) Option {
	return func(c *Config) {
		c.APIPort = port
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Config) {
		c.UserAgent = userAgent
	}
}

// WithHTTPClient sets the http.Client performing the requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = httpClient
	}
}

// WithLogger sets the logger receiving request warnings.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
