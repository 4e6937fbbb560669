package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers idempotency keys of mutating requests so a
// retried request is recognized instead of executed twice.
type IdempotencyStore interface {
	// MarkProcessed records the key with a TTL. It returns true when the key
	// was newly recorded and false when it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key has been recorded and has not expired.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
