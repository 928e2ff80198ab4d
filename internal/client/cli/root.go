package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, restores or asks for a session, starts the
// connectivity watcher and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to Zatyshok (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.restoreSession(ctx) {
		a.drainNotices(ctx)
	}
	if a.isLoggedIn() {
		a.printf("Welcome back, %s.\n", a.user())
	} else {
		_ = a.Login(ctx)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Ping reports the server's liveness message.
func (a *App) Ping(ctx context.Context) error {
	msg, err := a.auth.Ping(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		a.println("Disconnected.")
		return err
	}
	a.setMode(ModeOnline)
	a.println(msg)
	return nil
}
