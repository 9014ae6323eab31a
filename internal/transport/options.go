package transport

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRetries sets how many times a failed download is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = uint64(n)
		}
	}
}

// WithBackOff sets the wait policy between retries. newBackOff is called
// once per download.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		if newBackOff != nil {
			c.newBackOff = newBackOff
		}
	}
}

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxSize limits the size of a response body.
func WithMaxSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxSize = n
		}
	}
}
