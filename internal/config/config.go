// Package config loads collstats settings from the environment and optional .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the settings that flags and arguments fall back to.
type Config struct {
	OutputPath string `env:"COLLSTATS_OUTPUT" envDefault:"collection_stats.csv"`
	Format     string `env:"COLLSTATS_FORMAT" envDefault:"csv"`
	LogLevel   string `env:"COLLSTATS_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"COLLSTATS_LOG_FORMAT" envDefault:"text"`
}

// Load reads the first .env file found and then parses the environment into a Config.
// Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("COLLSTATS_OUTPUT must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("COLLSTATS_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "collstats", ".env"))
	}
	return paths
}
