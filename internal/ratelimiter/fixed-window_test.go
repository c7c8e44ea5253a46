package ratelimiter

import (
	"testing"
	"time"
)

func TestFixedWindowLimiter(t *testing.T) {
	t.Parallel()

	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("4th request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("unexpected retry-after %v", retryAfter)
	}

	// other clients are unaffected
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Fatal("different client should be allowed")
	}
}

func TestFixedWindowLimiterResets(t *testing.T) {
	t.Parallel()

	rl := NewFixedWindowLimiter(1, 20*time.Millisecond)

	if ok, _ := rl.Allow("c"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("c"); ok {
		t.Fatal("second request in window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if ok, _ := rl.Allow("c"); !ok {
		t.Fatal("request after window reset should be allowed")
	}
}
