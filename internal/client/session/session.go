// Package session provides the injectable session-store capability the
// transport client reads before every request and clears on rejection.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

// Store persists the current session. Implementations must be safe for
// concurrent use; Clear on an empty store is a no-op.
type Store interface {
	// Get returns the zero Session when nobody is logged in.
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	mu sync.RWMutex
	s  models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s, nil
}

func (m *MemoryStore) Set(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = models.Session{}
	return nil
}
