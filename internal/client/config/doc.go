// Package config loads runtime configuration for the fitlog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a dotenv file (-e/-env-file, else ./.env) and the
//     FITLOG_SERVER_URL, FITLOG_DB_PATH, FITLOG_LOG_LEVEL and
//     FITLOG_REQUEST_TIMEOUT variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the REST API
//	-d string     path of the local SQLite database
//	-l string     log level
//	-t duration   request timeout
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3001",
//	  "db_path": "fitlog.db",
//	  "log_level": "debug",
//	  "request_timeout": "10s"
//	}
package config
