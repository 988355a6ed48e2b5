// Package config loads server configuration from TOML files with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hetu-project/openresearch-mcp-server/internal/common"
)

// Config holds all configuration for the OpenResearch MCP server.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Backend BackendConfig        `toml:"backend"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// BackendConfig holds settings for the research data backend.
type BackendConfig struct {
	URL        string `toml:"url"`
	Timeout    string `toml:"timeout"`
	MaxResults int    `toml:"max_results"`
}

// GetTimeout parses and returns the per-request timeout duration.
func (c *BackendConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Load loads configuration with priority: defaults -> file -> env.
// A missing config file is not an error; defaults and env apply.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies OPENRESEARCH_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if name := os.Getenv("OPENRESEARCH_SERVER_NAME"); name != "" {
		cfg.Server.Name = name
	}
	if port := os.Getenv("OPENRESEARCH_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if url := os.Getenv("OPENRESEARCH_BACKEND_URL"); url != "" {
		cfg.Backend.URL = url
	}
	if timeout := os.Getenv("OPENRESEARCH_BACKEND_TIMEOUT"); timeout != "" {
		cfg.Backend.Timeout = timeout
	}
	if max := os.Getenv("OPENRESEARCH_MAX_RESULTS"); max != "" {
		if m, err := strconv.Atoi(max); err == nil && m > 0 {
			cfg.Backend.MaxResults = m
		}
	}
	if level := os.Getenv("OPENRESEARCH_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("OPENRESEARCH_LOG_FILE"); file != "" {
		cfg.Logging.FilePath = file
	}
}

// UserAgent returns the client identification string sent to the backend.
func (c *Config) UserAgent() string {
	return fmt.Sprintf("%s/%s", c.Server.Name, GetVersion())
}
