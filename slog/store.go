package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/slackmoji"
)

// Ensure LoggingStore implements slackmoji.FileStore.
var _ slackmoji.FileStore = (*LoggingStore)(nil)

// LoggingStore wraps a FileStore with debug logging.
type LoggingStore struct {
	next   slackmoji.FileStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next slackmoji.FileStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Prepare delegates to the wrapped store and logs the operation.
func (s *LoggingStore) Prepare(ctx context.Context) (err error) {
	defer func() {
		s.logger.Debug("prepare output", "err", err)
	}()
	return s.next.Prepare(ctx)
}

// Write delegates to the wrapped store and logs the operation.
func (s *LoggingStore) Write(ctx context.Context, filename string, data []byte) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("write",
			"file", filename,
			"path", path,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Write(ctx, filename, data)
}
