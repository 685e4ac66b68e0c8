package mock

import (
	"context"

	"github.com/fwojciec/slackmoji"
)

var _ slackmoji.FileStore = (*FileStore)(nil)

// FileStore is a mock implementation of slackmoji.FileStore.
type FileStore struct {
	PrepareFn func(ctx context.Context) error
	WriteFn   func(ctx context.Context, filename string, data []byte) (string, error)
}

func (s *FileStore) Prepare(ctx context.Context) error {
	return s.PrepareFn(ctx)
}

func (s *FileStore) Write(ctx context.Context, filename string, data []byte) (string, error) {
	return s.WriteFn(ctx, filename, data)
}
