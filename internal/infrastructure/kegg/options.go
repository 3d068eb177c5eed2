package kegg

import (
	"net/http"
	"time"

	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the KEGG REST endpoint, mainly for tests and
// mirrors. Empty values are ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
// Ignored when a custom HTTP client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom User-Agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
