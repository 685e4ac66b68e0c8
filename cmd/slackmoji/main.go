package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/slackmoji"
	"github.com/fwojciec/slackmoji/download"
	"github.com/fwojciec/slackmoji/fs"
	"github.com/fwojciec/slackmoji/goquery"
	smhttp "github.com/fwojciec/slackmoji/http"
	smslog "github.com/fwojciec/slackmoji/slog"
	"github.com/fwojciec/slackmoji/toml"
	"github.com/google/uuid"
)

func main() {
	// The first signal stops new downloads; in-flight ones still finish.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is the effective configuration, set by Run.
	Config *slackmoji.Config
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("slackmoji"),
		kong.Description("Download custom emoji from a saved Slack \"customize emoji\" page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.config()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", slackmoji.ErrorMessage(err))
		return err
	}
	m.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Parser: smslog.NewLoggingParser(goquery.NewParser(), logger),
	}

	fetcher := smhttp.NewFetcher(
		smhttp.WithTimeout(cfg.Timeout),
		smhttp.WithUserAgent(cfg.UserAgent),
		smhttp.WithMaxConnsPerHost(cfg.Concurrency),
	)

	downloader := &download.Downloader{
		Fetcher:     smslog.NewLoggingFetcher(fetcher, logger),
		Store:       smslog.NewLoggingStore(fs.NewStore(cfg.OutputDir), logger),
		Logger:      logger,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
	}
	if cfg.RateLimit > 0 {
		downloader.RateLimiter = download.NewHostLimiter(cfg.RateLimit)
	}
	deps.Downloader = downloader

	cmd := &DownloadCmd{
		InFile:    cfg.InFile,
		OutputDir: cfg.OutputDir,
		Preview:   cli.Preview,
		Report:    cli.Report,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
// Zero-valued options fall back to the config file, then to defaults.
type CLI struct {
	InFile      string        `arg:"" optional:"" name:"in-file" help:"Saved emoji page (overrides in_file)"`
	Config      string        `short:"C" type:"path" env:"SLACKMOJI_CONFIG" help:"TOML config file"`
	OutputDir   string        `short:"o" name:"output-dir" help:"Output directory (default: emoji)"`
	Concurrency int           `short:"c" help:"Maximum downloads in flight (default: 200)"`
	Timeout     time.Duration `short:"t" help:"Timeout per request (default: 30s)"`
	RateLimit   float64       `name:"rate-limit" help:"Requests per second per host, 0 for unlimited"`
	UserAgent   string        `name:"user-agent" help:"User-Agent header for image requests"`
	Preview     bool          `short:"p" help:"List emoji without downloading"`
	Report      string        `type:"path" help:"Write a JSON failure report to this file"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// config resolves the effective configuration: flags, then the config
// file, then defaults.
func (c *CLI) config() (*slackmoji.Config, error) {
	cfg := slackmoji.DefaultConfig()
	if c.Config != "" {
		loaded, err := toml.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.InFile != "" {
		cfg.InFile = c.InFile
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}
	if c.RateLimit != 0 {
		cfg.RateLimit = c.RateLimit
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
