package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied idempotency keys so a retried
// create is not applied twice
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already seen.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so the request can be retried with it.
	// Releasing an unknown key is not an error.
	Release(ctx context.Context, key string) error

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
