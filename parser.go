package slackmoji

import "io"

// ParseResult holds the emoji extracted from a saved emoji page.
type ParseResult struct {
	// Pairs are the downloadable emoji in document order.
	Pairs []EmojiPair

	// Aliases is the number of alias rows that were excluded.
	Aliases int

	// Skipped holds one EINVALID error per malformed row.
	Skipped []error
}

// Parser extracts emoji pairs from a saved emoji page.
type Parser interface {
	// Parse reads the whole document. Malformed rows are skipped and
	// reported in the result; only an unreadable document is an error.
	Parse(r io.Reader) (*ParseResult, error)
}
