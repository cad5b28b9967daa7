// Package metadata provides a small key/value store backed by the local
// database. It is the persistence layer for the session credential (the
// browser's localStorage analog).
package metadata

import "context"

type Repository interface {
	// Get returns the stored value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
