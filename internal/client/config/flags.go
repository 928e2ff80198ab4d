package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/flagx"
)

var ownFlags = []string{"-a", "-s", "-i", "-r", "-l", "-f", "-z", "-w"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL
//	-s string   session database path
//	-i int      online check interval (seconds)
//	-r int      request timeout (seconds, 0 = transport default)
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json, zap)
//	-z string   timezone (IANA name or Local)
//	-w          serialize writes per resource
//
// Only these flags are picked out of args (flagx.FilterArgs) so other
// loaders' flags do not trip the parser. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "timezone")
	fs.BoolVar(&cfg.SerializeWrites, "w", cfg.SerializeWrites, "serialize writes per resource")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "r":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
