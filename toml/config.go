// Package toml loads slackmoji configuration files.
package toml

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/slackmoji"
)

// LoadConfig reads the TOML file at path on top of slackmoji.DefaultConfig.
// Keys the file does not set keep their defaults; unknown keys are an error
// so that typos do not go unnoticed.
//
//	in_file     = "emoji.html"
//	output_dir  = "emoji"
//	concurrency = 200
//	timeout     = "30s"
//	rate_limit  = 0.0
//	user_agent  = "slackmoji/1.0"
func LoadConfig(path string) (*slackmoji.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "read config: %w", err)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML text on top of slackmoji.DefaultConfig.
func ParseConfig(text string) (*slackmoji.Config, error) {
	cfg := slackmoji.DefaultConfig()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}
