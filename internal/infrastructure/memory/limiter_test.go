package memory

import (
	"context"
	"testing"
	"time"
)

func TestAttemptLimiter_BlocksAfterMax(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		n, err := l.Hit(ctx, "alice")
		if err != nil {
			t.Fatalf("Hit returned error: %v", err)
		}
		if n != i {
			t.Fatalf("expected count %d, got %d", i, n)
		}
	}

	blocked, err := l.Blocked(ctx, "alice")
	if err != nil {
		t.Fatalf("Blocked returned error: %v", err)
	}
	if !blocked {
		t.Fatalf("expected alice to be blocked after 3 failures")
	}

	// other keys are unaffected
	blocked, _ = l.Blocked(ctx, "bob")
	if blocked {
		t.Fatalf("bob must not be blocked")
	}
}

func TestAttemptLimiter_Reset(t *testing.T) {
	l := NewAttemptLimiter(1, time.Minute)
	ctx := context.Background()

	_, _ = l.Hit(ctx, "alice")
	if blocked, _ := l.Blocked(ctx, "alice"); !blocked {
		t.Fatalf("expected blocked")
	}

	if err := l.Reset(ctx, "alice"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if blocked, _ := l.Blocked(ctx, "alice"); blocked {
		t.Fatalf("expected unblocked after reset")
	}
}

func TestAttemptLimiter_WindowExpiry(t *testing.T) {
	l := NewAttemptLimiter(1, time.Millisecond)
	ctx := context.Background()

	_, _ = l.Hit(ctx, "alice")
	time.Sleep(5 * time.Millisecond)

	if blocked, _ := l.Blocked(ctx, "alice"); blocked {
		t.Fatalf("expected window to have expired")
	}

	// a hit after the window starts a fresh count
	n, _ := l.Hit(ctx, "alice")
	if n != 1 {
		t.Fatalf("expected fresh count 1, got %d", n)
	}
}
