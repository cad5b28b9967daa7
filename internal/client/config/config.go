// Package config holds runtime settings for the pubkeeper CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - BackendURL: base URL of the publications REST backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionPollInterval: how often the persisted session is polled for
//     changes made by other processes.
//   - DataFile: path of the local sqlite database (session persistence).
//   - Debug: enables debug-level logging.
type Config struct {
	BackendURL          string
	RequestTimeout      time.Duration
	SessionPollInterval time.Duration
	DataFile            string
	Debug               bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.SessionPollInterval = 2 * time.Second
	c.DataFile = "pubkeeper.db"
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file (if
// provided) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
