package download

import (
	"context"
	"sync"

	"github.com/fwojciec/slackmoji"
	"golang.org/x/time/rate"
)

var _ slackmoji.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out requests to each image host with a token bucket
// of burst 1. Hosts are limited independently of each other.
type HostLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter allowing rps requests per second to
// every host. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{
		limit:   limit,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until host may receive another request or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.bucket(host).Wait(ctx)
}

func (h *HostLimiter) bucket(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.buckets[host]
	if !ok {
		b = rate.NewLimiter(h.limit, 1)
		h.buckets[host] = b
	}
	return b
}
