// Package http provides an HTTP-based implementation of slackmoji.Fetcher.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/slackmoji"
)

// DefaultFetchTimeout is the default timeout for a single request.
const DefaultFetchTimeout = slackmoji.DefaultTimeout

// Ensure Fetcher implements slackmoji.Fetcher at compile time.
var _ slackmoji.Fetcher = (*Fetcher)(nil)

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Fetcher retrieves resource bodies using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request, covering connect and
// reading the body. Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxConnsPerHost caps the number of connections kept to each host.
func WithMaxConnsPerHost(n int) Option {
	return func(f *Fetcher) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxConnsPerHost = n
		transport.MaxIdleConnsPerHost = n
		f.client.Transport = transport
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		timeout:   DefaultFetchTimeout,
		userAgent: slackmoji.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EFETCH, "build request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, slackmoji.Errorf(slackmoji.EFETCH, "%w", &StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, url, err)
	}

	return body, nil
}

// classify converts a transport error into an application error, marking
// deadline expiry as ETIMEOUT.
func classify(ctx context.Context, url string, err error) error {
	if isTimeout(ctx, err) {
		return slackmoji.Errorf(slackmoji.ETIMEOUT, "fetch %s: %w", url, err)
	}
	return slackmoji.Errorf(slackmoji.EFETCH, "fetch %s: %w", url, err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
