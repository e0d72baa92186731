package config

import "time"

// Config holds runtime settings for the blogctl CLI.
//
// Fields:
//   - APIBaseURL: base URL of the blog backend REST API.
//   - DatabaseDSN: path of the local sqlite credential database.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DatabaseDSN = "blogctl.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from environment variables, JSON (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
