// Package fs provides file-based storage for downloaded emoji.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/slackmoji"
)

// Ensure Store implements slackmoji.FileStore at compile time.
var _ slackmoji.FileStore = (*Store)(nil)

// Store writes emoji files into a single output directory. Each write goes
// to a temporary file in the same directory and is renamed into place, so
// a reader never sees a partial file and a later write of the same name
// replaces the earlier one.
type Store struct {
	dir string
}

// NewStore creates a new Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Prepare creates the output directory and any missing parents.
// An existing directory is not an error; an existing non-directory is.
func (s *Store) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return slackmoji.Errorf(slackmoji.ESETUP, "create output directory %q: %w", s.dir, err)
	}
	return nil
}

// Write stores data as filename inside the output directory.
func (s *Store) Write(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filename)

	tmp, err := os.CreateTemp(s.dir, ".slackmoji-*.tmp")
	if err != nil {
		return "", slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", dst, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", dst, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return "", slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return "", slackmoji.Errorf(slackmoji.EWRITE, "write %s: %w", dst, err)
	}

	return dst, nil
}

// ValidateFilename returns EINVALID unless name is a plain, local file name:
// non-empty, no path separators, not "." or "..".
func ValidateFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return slackmoji.Errorf(slackmoji.EINVALID, "invalid filename %q", name)
	case strings.ContainsAny(name, `/\`):
		return slackmoji.Errorf(slackmoji.EINVALID, "filename %q must not contain path separators", name)
	case strings.ContainsRune(name, 0):
		return slackmoji.Errorf(slackmoji.EINVALID, "filename %q must not contain NUL", name)
	case !filepath.IsLocal(name):
		return slackmoji.Errorf(slackmoji.EINVALID, "filename %q is not a local name", name)
	}
	return nil
}
