// Package config loads tool configuration from TOML. Every field has
// a default, so running without a config file just works; an
// explicitly named file that is missing or invalid aborts the
// invocation before any identifier is processed.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// GitHub holds GitHub source settings.
type GitHub struct {
	Token string `toml:"token"`
}

// VSCode holds VS Code changelog source settings.
type VSCode struct {
	BaseURL string `toml:"base_url"`
}

// Config is the full tool configuration.
type Config struct {
	StoreDir      string `toml:"store_dir"`
	TimeoutSecs   int    `toml:"timeout_seconds"`
	UserAgent     string `toml:"user_agent"`
	MaxConcurrent int    `toml:"max_concurrent"`
	MaxRetries    int    `toml:"max_retries"`
	RetryDelayMS  int    `toml:"retry_delay_ms"`
	GitHub        GitHub `toml:"github"`
	VSCode        VSCode `toml:"vscode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StoreDir:      "releases",
		TimeoutSecs:   30,
		MaxConcurrent: 4,
		MaxRetries:    3,
		RetryDelayMS:  1000,
		VSCode: VSCode{
			BaseURL: "https://code.visualstudio.com/updates/",
		},
	}
}

// Load reads path when given, otherwise ~/.relscribe/config.toml if
// present. A missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".relscribe", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RetryDelay returns the base backoff delay as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}
