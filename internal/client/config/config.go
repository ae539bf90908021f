package config

import "time"

// Config holds runtime settings for the fitlog CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, without the /api suffix.
//   - DBPath: SQLite file holding the stored token.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: upper bound on a single API request.
type Config struct {
	ServerURL      string
	DBPath         string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.DBPath = "fitlog.db"
	c.LogLevel = "info"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
