package slackmoji

import (
	"context"
	"sort"
)

// DownloadResult is the terminal outcome for one EmojiPair. Exactly one
// result is produced per input pair: either Path is set (written) or Err is
// set (failed).
type DownloadResult struct {
	Pair  EmojiPair
	Path  string
	Bytes int
	Hash  string
	Err   error
}

// Failed reports whether the pair failed.
func (r DownloadResult) Failed() bool {
	return r.Err != nil
}

// BatchOutcome maps the name of every failed pair to its cause. Names not
// present succeeded. It has no ordering.
type BatchOutcome map[string]error

// Names returns the failed names in sorted order.
func (o BatchOutcome) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BatchResult holds every DownloadResult of a batch in input order.
type BatchResult struct {
	Results []DownloadResult
}

// Written returns the number of pairs written to disk.
func (b *BatchResult) Written() int {
	var n int
	for _, r := range b.Results {
		if !r.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of pairs that failed.
func (b *BatchResult) Failed() int {
	return len(b.Results) - b.Written()
}

// Bytes returns the total size of the written files.
func (b *BatchResult) Bytes() int {
	var n int
	for _, r := range b.Results {
		n += r.Bytes
	}
	return n
}

// Outcome returns the failures of the batch keyed by emoji name. When
// duplicate names fail, the later pair's cause is kept.
func (b *BatchResult) Outcome() BatchOutcome {
	outcome := make(BatchOutcome)
	for _, r := range b.Results {
		if r.Failed() {
			outcome[r.Pair.Name] = r.Err
		}
	}
	return outcome
}

// DownloadProgress reports progress during a batch download.
type DownloadProgress struct {
	Result    DownloadResult
	Completed int
	Total     int
}

// DownloadProgressFunc is called once per completed pair.
type DownloadProgressFunc func(DownloadProgress)

// Downloader fetches a batch of emoji and writes them to a FileStore.
type Downloader interface {
	// Download processes every pair and returns one result per pair.
	// The returned error is non-nil only when the batch could not start
	// at all (ESETUP); per-pair failures are recorded in the results.
	Download(ctx context.Context, pairs []EmojiPair, progress DownloadProgressFunc) (*BatchResult, error)
}
