package slackmoji

import "context"

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	// Fetch returns the full response body. The context controls timeout
	// and cancellation. Timeouts are reported with ETIMEOUT, other network
	// and status failures with EFETCH.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
