package toml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/slackmoji"
	"github.com/fwojciec/slackmoji/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads every recognized key", func(t *testing.T) {
		t.Parallel()

		cfg, err := toml.ParseConfig(`
in_file     = "saved/emoji.html"
output_dir  = "out"
concurrency = 50
timeout     = "5s"
rate_limit  = 20.5
user_agent  = "test/1"
`)

		require.NoError(t, err)
		assert.Equal(t, &slackmoji.Config{
			InFile:      "saved/emoji.html",
			OutputDir:   "out",
			Concurrency: 50,
			Timeout:     5 * time.Second,
			RateLimit:   20.5,
			UserAgent:   "test/1",
		}, cfg)
	})

	t.Run("keeps defaults for missing keys", func(t *testing.T) {
		t.Parallel()

		cfg, err := toml.ParseConfig(`in_file = "emoji.html"`)

		require.NoError(t, err)
		assert.Equal(t, "emoji.html", cfg.InFile)
		assert.Equal(t, slackmoji.DefaultConcurrency, cfg.Concurrency)
		assert.Equal(t, slackmoji.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, slackmoji.DefaultOutputDir, cfg.OutputDir)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := toml.ParseConfig(`outptu_dir = "typo"`)

		require.Error(t, err)
		assert.Equal(t, slackmoji.EINVALID, slackmoji.ErrorCode(err))
		assert.Contains(t, err.Error(), "outptu_dir")
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		t.Parallel()

		_, err := toml.ParseConfig(`concurrency = "many`)

		require.Error(t, err)
		assert.Equal(t, slackmoji.EINVALID, slackmoji.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads file from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "slackmoji.toml")
		require.NoError(t, os.WriteFile(path, []byte("concurrency = 8\n"), 0644))

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Concurrency)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := toml.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
