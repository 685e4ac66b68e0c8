package slackmoji

import "context"

// FileStore persists downloaded emoji under an output directory.
type FileStore interface {
	// Prepare creates the output directory if it does not exist.
	Prepare(ctx context.Context) error

	// Write stores data under filename, replacing any existing file, and
	// returns the path written. filename must be a plain local name.
	Write(ctx context.Context, filename string, data []byte) (path string, err error)
}
