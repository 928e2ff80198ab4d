package client

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
)

// writeGate admits one mutation per resource key at a time. A nil gate
// admits everything.
type writeGate struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

func newWriteGate() *writeGate {
	return &writeGate{locks: make(map[string]*semaphore.Weighted)}
}

// resourceKey is the first path segment: "/calendar/5" -> "calendar".
func resourceKey(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	return p
}

func (g *writeGate) acquire(ctx context.Context, path string) (func(), error) {
	if g == nil {
		return func() {}, nil
	}
	key := resourceKey(path)

	g.mu.Lock()
	sem, ok := g.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.locks[key] = sem
	}
	g.mu.Unlock()

	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}
