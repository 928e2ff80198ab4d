// Package services contains application services for the Zatyshok client.
// This file defines the authentication service: login, register, logout and
// the liveness probe, with the session kept in the injected store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/client/session"
)

// AuthService defines authentication operations for the host.
//
// Contract:
//   - Login: authenticate and persist token and display name.
//   - Register: create an account; the caller logs in separately.
//   - Logout: erase the local session.
//   - CurrentUser: the persisted session, zero when logged out.
//   - Ping: server liveness message.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Register(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.Session, error)
	Ping(ctx context.Context) (string, error)
}

type authService struct {
	client client.Client
	store  session.Store
}

func NewAuthService(c client.Client, store session.Store) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Login(ctx context.Context, username, password string) (models.Session, error) {
	if err := models.Validate(models.Credentials{Username: username, Password: password}); err != nil {
		return models.Session{}, err
	}

	sess, err := a.client.Login(ctx, username, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Set(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return sess, nil
}

func (a *authService) Register(ctx context.Context, username, password string) (string, error) {
	if err := models.Validate(models.Credentials{Username: username, Password: password}); err != nil {
		return "", err
	}

	msg, err := a.client.Register(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return msg, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (models.Session, error) {
	return a.store.Get(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) (string, error) {
	return a.client.Ping(ctx)
}
