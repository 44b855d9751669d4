package ports

import (
	"context"
)

// AttemptLimiter throttles repeated delivery-code confirmations per order
// so the 6-digit code space cannot be brute forced.
type AttemptLimiter interface {
	// Allow records one attempt for the key and reports whether it is
	// still within the window's budget.
	Allow(ctx context.Context, key string) (bool, error)
}
