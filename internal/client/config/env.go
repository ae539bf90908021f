package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvServerURL      = "FITLOG_SERVER_URL"
	EnvDBPath         = "FITLOG_DB_PATH"
	EnvLogLevel       = "FITLOG_LOG_LEVEL"
	EnvRequestTimeout = "FITLOG_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with FITLOG_* environment variables.
//
// A dotenv file is loaded first: the one named by -e/-env-file, or ./.env
// when present. Variables already set in the process environment win over
// the file. A missing ./.env is not an error; a missing explicit file or a
// malformed timeout panics.
func parseEnv(cfg *Config) {
	if file := flagx.EnvFileFlags(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
