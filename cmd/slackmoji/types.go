package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/slackmoji"
)

// Dependencies holds the wired services a command runs against.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Parser     slackmoji.Parser
	Downloader slackmoji.Downloader
}
