package storage

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrDoesNotExist is returned by Read when no data is stored under the key,
// regardless of backend.
var ErrDoesNotExist = errors.New("does not exist")

// System defines the operations for interacting with the storage backend
// that holds calendar data such as holiday lists.
type System interface {
	// Write stores data under a key, replacing any previous content.
	Write(ctx context.Context, key string, data []byte) error

	// Read returns the data stored under a key, or ErrDoesNotExist.
	Read(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key.  Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetKeysWithPrefix lists every stored key starting with prefix.
	GetKeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
