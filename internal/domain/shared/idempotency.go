package shared

import (
	"context"
	"time"
)

// IdempotencyStore records externally-delivered event IDs so that retried
// deliveries (webhooks in particular) are processed at most once.
type IdempotencyStore interface {
	// MarkProcessed atomically marks an event as processed with a TTL.
	// Returns true if the event was newly marked, false if it had already
	// been processed.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether an event has already been processed.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// Release forgets a previously marked event so a retried delivery can
	// be processed again. Used when handling fails after the mark.
	Release(ctx context.Context, eventID string) error

	// Close releases resources held by the store.
	Close() error
}
