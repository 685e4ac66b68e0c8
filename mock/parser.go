package mock

import (
	"io"

	"github.com/fwojciec/slackmoji"
)

var _ slackmoji.Parser = (*Parser)(nil)

// Parser is a mock implementation of slackmoji.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*slackmoji.ParseResult, error)
}

func (p *Parser) Parse(r io.Reader) (*slackmoji.ParseResult, error) {
	return p.ParseFn(r)
}
