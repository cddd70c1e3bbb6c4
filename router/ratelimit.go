package router

import (
	"sync"
	"time"
)

type rateLimitWindow struct {
	count   int
	resetAt time.Time
}

// rateLimiter fixed-window admission counter keyed by client, a client with
// many subscriptions shares one budget. Windows are created lazily on the
// first admit call and reclaimed by the janitor once expired.
type rateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*rateLimitWindow
	window   time.Duration
	capacity int
}

func newRateLimiter(window time.Duration, capacity int) *rateLimiter {
	return &rateLimiter{
		windows:  make(map[string]*rateLimitWindow),
		window:   window,
		capacity: capacity,
	}
}

// admit check-and-increment as one step, two concurrent publishes can never
// both pass the capacity boundary
func (rl *rateLimiter) admit(clientID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.windows[clientID]
	if !ok || !now.Before(win.resetAt) {
		rl.windows[clientID] = &rateLimitWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if win.count < rl.capacity {
		win.count++
		return true
	}
	return false
}

// cleanupExpired delete windows whose reset time has passed, the next admit
// call recreates them
func (rl *rateLimiter) cleanupExpired() (removed int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for clientID, win := range rl.windows {
		if !now.Before(win.resetAt) {
			delete(rl.windows, clientID)
			removed++
		}
	}
	return removed
}

func (rl *rateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}
