package ports

import (
	"context"
	"time"
)

// TokenRevocationStore remembers tokens invalidated by logout until their
// natural expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RateLimitStore implements the shared counter behind fixed-window rate
// limiting. Increment returns the count for the window after adding one;
// the store owns window expiry.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
