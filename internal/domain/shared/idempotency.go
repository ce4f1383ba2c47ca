package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed operation keys to prevent duplicate
// execution. The draft lifecycle manager uses it to collapse concurrent
// draft-creation attempts for the same session into a single create.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already present
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
