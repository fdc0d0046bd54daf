package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter counts failed password checks per username in Redis, so the
// lockout window holds across instances.
// Key format: login_failures:<username>
type AttemptLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewAttemptLimiter creates a limiter allowing max failures per rolling window.
func NewAttemptLimiter(client *redis.Client, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{client: client, max: max, window: window}
}

// Blocked reports whether the key has exhausted its failure budget.
func (l *AttemptLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.max, nil
}

// Hit records one failure. The window starts at the first failure and the
// counter expires with it.
func (l *AttemptLimiter) Hit(ctx context.Context, key string) (int, error) {
	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("limiter hit: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return int(n), fmt.Errorf("limiter expire: %w", err)
		}
	}
	return int(n), nil
}

// Reset clears the counter after a successful check.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *AttemptLimiter) key(username string) string {
	return "login_failures:" + username
}
