package mock

import (
	"context"

	"github.com/fwojciec/slackmoji"
)

var _ slackmoji.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of slackmoji.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, pairs []slackmoji.EmojiPair, progress slackmoji.DownloadProgressFunc) (*slackmoji.BatchResult, error)
}

func (d *Downloader) Download(ctx context.Context, pairs []slackmoji.EmojiPair, progress slackmoji.DownloadProgressFunc) (*slackmoji.BatchResult, error) {
	return d.DownloadFn(ctx, pairs, progress)
}
