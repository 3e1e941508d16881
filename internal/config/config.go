package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-hclog"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "multitag"

type Config struct {
	LogLevel string `koanf:"log_level"` // trace, debug, info, warn or error (default: warn)
	Color    bool   `koanf:"color"`     // styled terminal output (default: true)

	Copy CopyConfig `koanf:"copy"`
}

// CopyConfig holds settings of the copy command.
type CopyConfig struct {
	SkipCover bool `koanf:"skip_cover"` // leave the destination cover alone
}

func defaults() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    true,
	}
}

// Load reads the configuration. When path is set only that file is read and
// it must exist; otherwise every existing file of the search path is merged.
func Load(path string) (*Config, error) {
	if path != "" {
		path = expandPath(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return loadFrom([]string{path})
	}
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be enforced by the TOML types.
func (c *Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, warn when it is not recognized.
func (c *Config) Level() hclog.Level {
	if l := hclog.LevelFromString(c.LogLevel); l != hclog.NoLevel {
		return l
	}
	return hclog.Warn
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/multitag/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./multitag.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
