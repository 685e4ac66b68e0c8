package slackmoji

import "time"

// Defaults applied by DefaultConfig.
const (
	DefaultOutputDir   = "emoji"
	DefaultConcurrency = 200
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "slackmoji/1.0"
)

// Config holds the settings of a batch run.
type Config struct {
	// InFile is the path of the saved emoji page.
	InFile string `toml:"in_file"`

	// OutputDir is the directory emoji are written to.
	OutputDir string `toml:"output_dir"`

	// Concurrency is the maximum number of pairs in flight.
	Concurrency int `toml:"concurrency"`

	// Timeout bounds each individual request.
	Timeout time.Duration `toml:"timeout"`

	// RateLimit is the number of requests per second allowed per host.
	// Zero disables rate limiting.
	RateLimit float64 `toml:"rate_limit"`

	UserAgent string `toml:"user_agent"`
}

// DefaultConfig returns a Config with every optional field set.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if c.InFile == "" {
		return Errorf(EINVALID, "in_file required")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output_dir required")
	}
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return Errorf(EINVALID, "rate_limit must not be negative, got %g", c.RateLimit)
	}
	return nil
}
