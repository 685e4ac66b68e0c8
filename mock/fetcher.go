package mock

import (
	"context"

	"github.com/fwojciec/slackmoji"
)

var (
	_ slackmoji.Fetcher     = (*Fetcher)(nil)
	_ slackmoji.HostLimiter = (*HostLimiter)(nil)
)

// Fetcher is a mock implementation of slackmoji.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

// HostLimiter is a mock implementation of slackmoji.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
