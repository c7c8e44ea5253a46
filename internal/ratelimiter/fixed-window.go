package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// FixedWindowRateLimiter counts requests per client within a fixed window.
// Windows reset lazily on the next request after expiry.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	frame   time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		frame:   frame,
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the client may proceed, and how long to wait when it
// may not.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[clientID]
	if !ok || now.After(w.resetAt) {
		rl.clients[clientID] = &window{count: 1, resetAt: now.Add(rl.frame)}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.resetAt.Sub(now)
}

// cleanup drops windows that expired more than a frame ago.
func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.frame)
	for range ticker.C {
		cutoff := time.Now().Add(-rl.frame)
		rl.mu.Lock()
		for id, w := range rl.clients {
			if w.resetAt.Before(cutoff) {
				delete(rl.clients, id)
			}
		}
		rl.mu.Unlock()
	}
}
