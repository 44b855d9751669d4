// Package redis implements the confirmation attempt limiter on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrClientIsRequired = errors.New("client is required")
var ErrLimitIsInvalid = errors.New("limit must be positive")
var ErrWindowIsInvalid = errors.New("window must be positive")

const (
	// DefaultLimit caps delivery code attempts per order within a window.
	DefaultLimit = 5
	// DefaultWindow is the rolling span one attempt budget covers.
	DefaultWindow = 10 * time.Minute
)

// AttemptLimiter counts attempts per key in Redis with a fixed window.
// The counter and its TTL are set in one transaction so a crashed client
// can never leave a key without expiry.
type AttemptLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewAttemptLimiter creates a limiter over an existing Redis client.
func NewAttemptLimiter(client *redis.Client, limit int64, window time.Duration) (*AttemptLimiter, error) {
	if client == nil {
		return nil, ErrClientIsRequired
	}
	if limit <= 0 {
		return nil, ErrLimitIsInvalid
	}
	if window <= 0 {
		return nil, ErrWindowIsInvalid
	}

	return &AttemptLimiter{client: client, limit: limit, window: window}, nil
}

// Allow records one attempt for the key and reports whether it is still
// within the window's budget. The TTL starts with the first attempt.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("attempt limiter: %w", err)
	}

	return incr.Val() <= l.limit, nil
}
