package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the requested key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KV is the persistent string-keyed backing store the persistence bridge
// writes through. Writes overwrite wholesale; there is no merge semantics.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
