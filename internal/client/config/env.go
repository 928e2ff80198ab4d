package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL          = "ZATYSHOK_API_URL"
	EnvAppToken        = "ZATYSHOK_APP_TOKEN"
	EnvSessionDBPath   = "ZATYSHOK_SESSION_DB"
	EnvRequestTimeout  = "ZATYSHOK_REQUEST_TIMEOUT"
	EnvLogLevel        = "ZATYSHOK_LOG_LEVEL"
	EnvLogFormat       = "ZATYSHOK_LOG_FORMAT"
	EnvTimezone        = "ZATYSHOK_TIMEZONE"
	EnvSerializeWrites = "ZATYSHOK_SERIALIZE_WRITES"
)

// parseEnv overlays cfg with environment variables. A dotenv file named by
// -e/-env (or ./.env when absent) is loaded first; variables already set in
// the process environment win over the file. A missing default .env is not
// an error, a missing explicit one panics.
func parseEnv(cfg *Config, args []string) {
	if envFile := flagx.EnvFileFlag(args); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := os.LookupEnv(EnvAppToken); ok {
		cfg.AppToken = v
	}
	if v, ok := os.LookupEnv(EnvSessionDBPath); ok && v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvTimezone); ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := os.LookupEnv(EnvSerializeWrites); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.SerializeWrites = b
	}
}
