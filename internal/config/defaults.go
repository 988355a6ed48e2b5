package config

import "github.com/hetu-project/openresearch-mcp-server/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "openresearch-mcp-server",
			Port: "8041",
		},
		Backend: BackendConfig{
			URL:        "https://test.nftkash.xyz/neo4j",
			Timeout:    "30s",
			MaxResults: 100,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/openresearch-mcp.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
