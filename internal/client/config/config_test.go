package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.APIURL)
	assert.Equal(t, "zatyshok.db", c.SessionDBPath)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "Local", c.Timezone)
	assert.False(t, c.SerializeWrites)
}

func TestLoadConfigFrom_Precedence(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://from-env:1")
	t.Setenv(EnvLogLevel, "warn")

	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"api_url":   "http://from-json:2",
		"log_level": "error",
		"timezone":  "Europe/Paris",
	})

	cfg := LoadConfigFrom([]string{"-c", path, "-a", "http://from-flag:3"})
	require.NotNil(t, cfg)

	assert.Equal(t, "http://from-flag:3", cfg.APIURL, "flags win")
	assert.Equal(t, "error", cfg.LogLevel, "json beats env")
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval, "untouched default")
}

func TestConfig_Location(t *testing.T) {
	c := &Config{Timezone: "Local"}
	assert.Equal(t, time.Local, c.Location())

	c.Timezone = ""
	assert.Equal(t, time.Local, c.Location())

	c.Timezone = "UTC"
	assert.Equal(t, "UTC", c.Location().String())

	c.Timezone = "Nowhere/Special"
	assert.Equal(t, time.Local, c.Location())
}
