package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fitlog/internal/flagx"
	"github.com/dmitrijs2005/fitlog/internal/timex"
)

// JsonConfig is the JSON form of Config. TokenTTL accepts "24h" or
// integer nanoseconds.
type JsonConfig struct {
	Addr      string         `json:"addr"`
	SecretKey string         `json:"secret_key"`
	TokenTTL  timex.Duration `json:"token_ttl"`
	LogLevel  string         `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, into config.
// Empty fields keep their current value. Panics on read or parse errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
