package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Zatyshok client.
//
// Fields:
//   - APIURL: base URL of the backend HTTP service.
//   - AppToken: static app-level credential shared by all installs.
//   - SessionDBPath: SQLite file holding the persisted session; ":memory:"
//     keeps the session for the process lifetime only.
//   - OnlineCheckInterval: how often the CLI probes server reachability.
//   - RequestTimeout: per-request timeout; zero leaves the transport default.
//   - LogLevel, LogFormat: see logging.New.
//   - Timezone: IANA zone used to turn timestamps into calendar days.
//   - SerializeWrites: allow one in-flight mutation per resource.
type Config struct {
	APIURL              string
	AppToken            string
	SessionDBPath       string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
	LogFormat           string
	Timezone            string
	SerializeWrites     bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:3000"
	c.AppToken = ""
	c.SessionDBPath = "zatyshok.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Timezone = "Local"
	c.SerializeWrites = false
}

// Location resolves Timezone, falling back to time.Local when it is empty,
// "Local" or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig builds a Config from the process command line.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Args[1:])
}

// LoadConfigFrom constructs a Config, applies defaults, then overlays the
// environment (optionally seeded from a .env file), a JSON file and finally
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfigFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
