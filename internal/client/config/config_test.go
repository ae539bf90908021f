package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3001", c.ServerURL)
	assert.Equal(t, "fitlog.db", c.DBPath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	t.Setenv(EnvServerURL, "http://env:1")
	t.Setenv(EnvDBPath, "env.db")

	path := writeTempJSON(t, "", "", map[string]any{
		"db_path":   "json.db",
		"log_level": "warn",
	})
	os.Args = []string{"testbin", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://env:1", cfg.ServerURL)
	assert.Equal(t, "json.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
