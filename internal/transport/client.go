// Package transport downloads roster inputs over HTTP with bounded retries.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/agentstation/radarmap/pkg/constants"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP GET with retry.
type Client struct {
	http       *http.Client
	retries    uint64
	newBackOff func() backoff.BackOff
	userAgent  string
	maxSize    int64
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultHTTPTimeout},
		retries:    constants.MaxRetries,
		newBackOff: defaultBackOff,
		userAgent:  constants.DefaultGenerator,
		maxSize:    constants.MaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = constants.RetryBackoff
	b.MaxInterval = constants.MaxRetryBackoff
	b.MaxElapsedTime = 0
	return b
}

// Get downloads url and returns the body. Server errors, rate limiting and
// network failures are retried; any other non-2xx status fails at once.
// Every failure is an *errors.APIError carrying the status code.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	logger := logging.FromContext(ctx)

	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		data, err := c.fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil || !err.Temporary() {
				return backoff.Permanent(err)
			}
			return err
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn().
			Err(err).
			Str("url", url).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("Download failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.retries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		switch {
		case ctx.Err() == context.Canceled:
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		case ctx.Err() == context.DeadlineExceeded:
			return nil, fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
		return nil, err
	}

	logger.Debug().
		Str("url", url).
		Int("bytes", len(body)).
		Int("attempts", attempt).
		Msg("Downloaded")
	return body, nil
}

// fetch performs a single GET.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, *errors.APIError) {
	source := path.Base(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A malformed URL never gets better.
		return nil, &errors.APIError{Source: source, URL: url, StatusCode: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{Source: source, URL: url, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.NewAPIError(source, url, resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, &errors.APIError{Source: source, URL: url, Message: err.Error(), Err: err}
	}
	if int64(len(data)) > c.maxSize {
		return nil, errors.NewAPIError(source, url, resp.StatusCode, fmt.Sprintf("response exceeds %d bytes", c.maxSize))
	}
	return data, nil
}
