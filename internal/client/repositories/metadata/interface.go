// Package metadata is the local key/value store the client keeps next to
// the process: today it only holds the session.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns ("", false, nil) when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany upserts all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes the given keys atomically; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
