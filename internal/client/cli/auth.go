package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/common"
)

// Register prompts for a username and password and creates the account.
// The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	msg, err := a.auth.Register(ctx, userName, password)
	if err != nil {
		a.println(authFailure(err))
		return err
	}
	if msg == "" {
		msg = "Account created."
	}
	a.println(msg)
	return nil
}

// Login prompts for credentials and opens a session. Bad credentials and
// an unreachable server are reported differently.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		a.println(authFailure(err))
		return err
	}

	a.setUser(sess.Username)
	a.setMode(ModeOnline)
	a.entries.Reload(ctx)
	a.moods.Reload(ctx)
	a.printf("Welcome home, %s.\n", sess.Username)
	return nil
}

// Logout erases the local session and the cached collections.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.resetState(ctx)
	a.println("Logged out.")
	return nil
}

// restoreSession picks up a session persisted by an earlier run.
func (a *App) restoreSession(ctx context.Context) bool {
	sess, err := a.auth.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot read persisted session", "error", err)
		return false
	}
	if !sess.Active() {
		return false
	}
	a.setUser(sess.Username)
	a.entries.Reload(ctx)
	a.moods.Reload(ctx)
	return true
}

func authFailure(err error) string {
	var ce *client.Error
	switch {
	case errors.Is(err, common.ErrInvalidDraft):
		return "Username and password are required."
	case errors.Is(err, client.ErrTransport):
		return "Server unreachable."
	case errors.As(err, &ce) && ce.Kind == client.KindCredentials:
		return ce.Detail
	default:
		return "Error: " + err.Error()
	}
}
