// Package memory provides in-process fallbacks for infrastructure that is
// optional in small deployments.
package memory

import (
	"context"
	"sync"
	"time"
)

// AttemptLimiter counts failed password checks per username in process
// memory. Used when no Redis address is configured; the lockout window then
// only holds for the lifetime of the process.
type AttemptLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	counts map[string]*entry
}

type entry struct {
	n     int
	first time.Time
}

func NewAttemptLimiter(max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{max: max, window: window, counts: make(map[string]*entry)}
}

func (l *AttemptLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.counts[key]
	if !ok {
		return false, nil
	}
	if time.Since(e.first) > l.window {
		delete(l.counts, key)
		return false, nil
	}
	return e.n >= l.max, nil
}

func (l *AttemptLimiter) Hit(ctx context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.counts[key]
	if !ok || time.Since(e.first) > l.window {
		e = &entry{first: time.Now()}
		l.counts[key] = e
	}
	e.n++
	return e.n, nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, key)
	return nil
}
