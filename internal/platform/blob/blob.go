// Package blob is the key-value persistence collaborator: opaque byte blobs
// addressed by string keys.
package blob

import "context"

type Store interface {
	// Get reports ok=false when the key has never been set.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
