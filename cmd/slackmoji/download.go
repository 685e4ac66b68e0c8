package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/slackmoji"
)

// ErrFailures is returned when at least one emoji could not be downloaded.
var ErrFailures = errors.New("some emoji failed to download")

// DownloadCmd downloads every emoji listed on a saved emoji page.
type DownloadCmd struct {
	InFile    string
	OutputDir string
	Preview   bool
	Report    string
}

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	parsed, err := c.parse(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slackmoji.ErrorMessage(err))
		return err
	}

	if c.Preview {
		return c.runPreview(deps, parsed)
	}
	return c.runDownload(deps, parsed)
}

func (c *DownloadCmd) parse(deps *Dependencies) (*slackmoji.ParseResult, error) {
	f, err := os.Open(c.InFile)
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "open %s: %w", c.InFile, err)
	}
	defer func() { _ = f.Close() }()

	return deps.Parser.Parse(f)
}

func (c *DownloadCmd) runPreview(deps *Dependencies, parsed *slackmoji.ParseResult) error {
	for _, pair := range parsed.Pairs {
		filename, _ := pair.Filename()
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", pair.Name, filename, pair.URL)
	}
	fmt.Fprintf(deps.Stdout, "%d emoji, %d aliases skipped, %d malformed rows\n",
		len(parsed.Pairs), parsed.Aliases, len(parsed.Skipped))
	return nil
}

func (c *DownloadCmd) runDownload(deps *Dependencies, parsed *slackmoji.ParseResult) error {
	fmt.Fprintf(deps.Stdout, "Found %d emoji (%d aliases skipped)\n", len(parsed.Pairs), parsed.Aliases)

	progress := func(p slackmoji.DownloadProgress) {
		if p.Result.Failed() {
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", p.Result.Pair.Name, p.Result.Err)
		}
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", p.Completed, p.Total, truncateName(p.Result.Pair.Name, 40))
	}

	batch, err := deps.Downloader.Download(deps.Ctx, parsed.Pairs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slackmoji.ErrorMessage(err))
		return err
	}

	// Clear progress line
	if len(parsed.Pairs) > 0 {
		fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d emoji (%s) to %s\n",
		batch.Written(), humanize.Bytes(uint64(batch.Bytes())), c.OutputDir)

	outcome := batch.Outcome()
	if len(outcome) > 0 {
		fmt.Fprintf(deps.Stdout, "Encountered errors in processing %d emoji:\n", len(outcome))
		for _, name := range outcome.Names() {
			fmt.Fprintf(deps.Stdout, "  %s: [%s] %s\n", name, slackmoji.ErrorCode(outcome[name]), outcome[name])
		}
	}

	if c.Report != "" {
		if err := writeReport(c.Report, batch); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", slackmoji.ErrorMessage(err))
			return err
		}
	}

	if len(outcome) > 0 {
		return ErrFailures
	}
	return nil
}

// truncateName shortens an emoji name for the progress line.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	return name[:maxLen-3] + "..."
}
