// Package download provides the bounded-concurrency batch downloader.
// It fetches every emoji of a batch through a fixed-size permit pool,
// writes each body to a FileStore, and records one outcome per emoji
// without letting any single failure stop the batch.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/slackmoji"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Ensure Downloader implements slackmoji.Downloader at compile time.
var _ slackmoji.Downloader = (*Downloader)(nil)

// Downloader fetches batches of emoji with at most Concurrency pairs in
// flight. A pair holds its permit from before the request is issued until
// its file is written or its failure recorded.
type Downloader struct {
	Fetcher     slackmoji.Fetcher
	Store       slackmoji.FileStore
	RateLimiter slackmoji.HostLimiter
	Logger      *slog.Logger

	// Concurrency is the size of the permit pool.
	// Defaults to slackmoji.DefaultConcurrency.
	Concurrency int

	// Timeout bounds each request individually.
	// Defaults to slackmoji.DefaultTimeout.
	Timeout time.Duration
}

// positioned ties a result to the index of its pair in the input.
type positioned struct {
	position int
	result   slackmoji.DownloadResult
}

// Download fetches and writes every pair. It returns one result per pair in
// input order. The only error returned is the ESETUP failure to create the
// output directory, in which case nothing is fetched.
//
// Cancelling ctx stops new fetches: pairs that have not acquired a permit
// fail with ECANCELED, while pairs already in flight run until they finish
// or hit their own timeout.
func (d *Downloader) Download(ctx context.Context, pairs []slackmoji.EmojiPair, progress slackmoji.DownloadProgressFunc) (*slackmoji.BatchResult, error) {
	if err := d.Store.Prepare(ctx); err != nil {
		if slackmoji.ErrorCode(err) != slackmoji.ESETUP {
			err = slackmoji.Errorf(slackmoji.ESETUP, "prepare output: %w", err)
		}
		return nil, err
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = slackmoji.DefaultConcurrency
	}

	total := len(pairs)
	logger := d.logger()
	logger.Debug("download started", "total", total, "concurrency", concurrency, "timeout", d.timeout())

	// Buffered so workers never block on the collector.
	resultCh := make(chan positioned, total)
	permits := semaphore.NewWeighted(int64(concurrency))
	tracker := newWriteTracker()

	go func() {
		defer close(resultCh)

		var g errgroup.Group
		for i, pair := range pairs {
			if err := acquire(ctx, permits); err != nil {
				for j := i; j < total; j++ {
					resultCh <- positioned{position: j, result: canceled(pairs[j], err)}
				}
				break
			}

			g.Go(func() error {
				defer permits.Release(1)
				resultCh <- positioned{position: i, result: d.process(ctx, pair, tracker)}
				return nil
			})
		}
		_ = g.Wait()
	}()

	results := make([]slackmoji.DownloadResult, total)
	var completed int
	for r := range resultCh {
		completed++
		results[r.position] = r.result

		if r.result.Failed() {
			logger.Debug("emoji failed", "name", r.result.Pair.Name, "url", r.result.Pair.URL, "err", r.result.Err)
		}
		if progress != nil {
			progress(slackmoji.DownloadProgress{
				Result:    r.result,
				Completed: completed,
				Total:     total,
			})
		}
	}

	batch := &slackmoji.BatchResult{Results: results}
	logger.Debug("download finished", "written", batch.Written(), "failed", batch.Failed(), "bytes", batch.Bytes())
	return batch, nil
}

// process fetches and writes a single pair and returns its terminal result.
func (d *Downloader) process(ctx context.Context, pair slackmoji.EmojiPair, tracker *writeTracker) slackmoji.DownloadResult {
	result := slackmoji.DownloadResult{Pair: pair}

	if err := pair.Validate(); err != nil {
		result.Err = err
		return result
	}

	filename, check := pair.Filename()
	d.logExtension(pair, filename, check)

	if d.RateLimiter != nil {
		if err := d.RateLimiter.Wait(ctx, hostOf(pair.URL)); err != nil {
			result.Err = canceled(pair, err).Err
			return result
		}
	}

	// In-flight work is detached from batch cancellation and bounded by its
	// own deadline instead.
	inflight := context.WithoutCancel(ctx)
	reqCtx, cancel := context.WithTimeout(inflight, d.timeout())
	defer cancel()

	body, err := d.Fetcher.Fetch(reqCtx, pair.URL)
	if err != nil {
		result.Err = d.fetchError(reqCtx, pair, err)
		return result
	}

	path, err := d.Store.Write(inflight, filename, body)
	if err != nil {
		if slackmoji.ErrorCode(err) == slackmoji.EINTERNAL {
			err = slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", filename, err)
		}
		result.Err = err
		return result
	}

	if n := tracker.record(filename); n > 1 {
		d.logger().Warn("filename collision, overwrote earlier emoji", "name", pair.Name, "file", filename, "writes", n)
	}

	result.Path = path
	result.Bytes = len(body)
	result.Hash = hash(body)
	return result
}

// fetchError makes sure a fetch failure carries EFETCH or ETIMEOUT.
func (d *Downloader) fetchError(reqCtx context.Context, pair slackmoji.EmojiPair, err error) error {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && slackmoji.ErrorCode(err) != slackmoji.ETIMEOUT {
		return slackmoji.Errorf(slackmoji.ETIMEOUT, "fetch %s: no response within %s: %w", pair.URL, d.timeout(), err)
	}
	if slackmoji.ErrorCode(err) == slackmoji.EINTERNAL {
		return slackmoji.Errorf(slackmoji.EFETCH, "fetch %s: %w", pair.URL, err)
	}
	return err
}

func (d *Downloader) logExtension(pair slackmoji.EmojiPair, filename string, check slackmoji.ExtensionCheck) {
	switch check {
	case slackmoji.ExtensionMissing:
		d.logger().Warn("no file extension in url, using none", "name", pair.Name, "url", pair.URL)
	case slackmoji.ExtensionDodgy:
		d.logger().Warn("dodgy file extension, using anyway", "name", pair.Name, "url", pair.URL, "file", filename)
	}
}

func (d *Downloader) timeout() time.Duration {
	if d.Timeout <= 0 {
		return slackmoji.DefaultTimeout
	}
	return d.Timeout
}

func (d *Downloader) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// acquire takes one permit unless ctx is done, even when a permit frees up
// at the same moment ctx is cancelled.
func acquire(ctx context.Context, permits *semaphore.Weighted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := permits.Acquire(ctx, 1); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		permits.Release(1)
		return err
	}
	return nil
}

// canceled builds the result for a pair that never started.
func canceled(pair slackmoji.EmojiPair, err error) slackmoji.DownloadResult {
	return slackmoji.DownloadResult{
		Pair: pair,
		Err:  slackmoji.Errorf(slackmoji.ECANCELED, "%s not fetched: %w", pair.Name, err),
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// hash computes a hash of the content using xxhash.
func hash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// writeTracker counts writes per filename to surface collisions.
type writeTracker struct {
	mu     sync.Mutex
	writes map[string]int
}

func newWriteTracker() *writeTracker {
	return &writeTracker{writes: make(map[string]int)}
}

func (t *writeTracker) record(filename string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes[filename]++
	return t.writes[filename]
}
