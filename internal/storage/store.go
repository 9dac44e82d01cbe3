package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key is missing from storage.
var ErrNotFound = errors.New("storage: record not found")

// Stable keys for the three persisted records.
const (
	KeyProgress = "brightboard_progress"
	KeySettings = "brightboard_settings"
	KeySession  = "brightboard_session"
)

// Store is the persistent key/value collaborator. Values are opaque JSON
// blobs; writes are last-write-wins per key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
