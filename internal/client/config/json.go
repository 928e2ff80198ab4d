package config

import (
	"os"

	"github.com/dmitrijs2005/zatyshok/internal/flagx"
	"github.com/dmitrijs2005/zatyshok/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so the file can say "3s" or integer nanoseconds.
// Pointer fields distinguish "absent" from "set to the zero value".
type JsonConfig struct {
	APIURL              string          `json:"api_url"`
	AppToken            *string         `json:"app_token"`
	SessionDBPath       string          `json:"session_db_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
	Timezone            string          `json:"timezone"`
	SerializeWrites     *bool           `json:"serialize_writes"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Without that flag nothing happens. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.AppToken != nil {
		cfg.AppToken = *jc.AppToken
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.Timezone != "" {
		cfg.Timezone = jc.Timezone
	}
	if jc.SerializeWrites != nil {
		cfg.SerializeWrites = *jc.SerializeWrites
	}
}
