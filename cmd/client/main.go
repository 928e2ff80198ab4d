package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/zatyshok/internal/buildinfo"
	"github.com/dmitrijs2005/zatyshok/internal/client/cli"
	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/config"
	"github.com/dmitrijs2005/zatyshok/internal/client/services"
	"github.com/dmitrijs2005/zatyshok/internal/client/session"
	"github.com/dmitrijs2005/zatyshok/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var store session.Store
	if cfg.SessionDBPath == ":memory:" {
		store = session.NewMemoryStore()
	} else {
		s, err := session.OpenSQLite(ctx, cfg.SessionDBPath)
		if err != nil {
			log.Fatalf("open session store: %v", err)
		}
		defer s.Close()
		store = s
	}

	// the transport hooks and the delete confirmer need the app, which in
	// turn needs the services built on the transport
	var app *cli.App

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:         cfg.APIURL,
		AppToken:        cfg.AppToken,
		Store:           store,
		Logger:          logger,
		Timeout:         cfg.RequestTimeout,
		SerializeWrites: cfg.SerializeWrites,
		OnSessionExpired: func(ctx context.Context) {
			app.SessionExpired(ctx)
		},
		OnVersionRejected: func(ctx context.Context) {
			app.VersionRejected(ctx)
		},
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	loc := cfg.Location()
	confirm := func(ctx context.Context, prompt string) bool {
		return app.Confirmer()(ctx, prompt)
	}

	app = cli.NewApp(cli.Deps{
		Config:  cfg,
		Auth:    services.NewAuthService(api, store),
		Entries: services.NewEntryService(api, loc, confirm),
		Moods:   services.NewMoodService(api, loc),
		Logger:  logger,
	})

	app.Run(ctx)

}
