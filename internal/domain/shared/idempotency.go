package shared

import (
	"context"
	"time"
)

// IdempotencyStore records which domain events a side-effecting handler has
// already consumed. Thank-you notifications go through it so a recipient is
// not told twice about the same thank-you.
type IdempotencyStore interface {
	// MarkProcessed claims eventID for ttl. It returns false when the ID was
	// already claimed and the claim has not expired.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// Release drops a claim so the event can be handled again.
	Release(ctx context.Context, eventID string) error

	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls deduplication of event handling
type IdempotencyConfig struct {
	// TTL bounds how long a claim is remembered
	TTL time.Duration
	// ReleaseOnFailure drops the claim when the wrapped handler fails
	ReleaseOnFailure bool
	Enabled          bool
}

// DefaultIdempotencyConfig keeps claims for a day and releases them on failure
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:              24 * time.Hour,
		ReleaseOnFailure: true,
		Enabled:          true,
	}
}
