// Package config handles configuration for the development API server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the development API server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing tokens (HS256). Development only.
//   - TokenTTL: lifetime of issued tokens.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr      string
	SecretKey string
	TokenTTL  time.Duration
	LogLevel  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":3001"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
