package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/slackmoji"
)

// Ensure LoggingParser implements slackmoji.Parser.
var _ slackmoji.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser, logging a summary and a warning for every
// skipped row.
type LoggingParser struct {
	next   slackmoji.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next slackmoji.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the result.
func (p *LoggingParser) Parse(r io.Reader) (result *slackmoji.ParseResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Error("parse", "duration", time.Since(begin), "err", err)
			return
		}
		for _, skipped := range result.Skipped {
			p.logger.Warn("skipped row", "err", skipped)
		}
		p.logger.Info("parse",
			"emoji", len(result.Pairs),
			"aliases", result.Aliases,
			"skipped", len(result.Skipped),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(r)
}
