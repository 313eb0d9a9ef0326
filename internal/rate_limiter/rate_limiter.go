package rate_limiter

import (
	"sync"
	"time"
)

// RateLimiter tracks request timestamps per client in a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		windowStart := time.Now().Add(-rl.window)

		for client, times := range rl.requests {
			valid := pruneBefore(times, windowStart)
			if len(valid) == 0 {
				delete(rl.requests, client)
			} else {
				rl.requests[client] = valid
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) IsAllowed(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	if times, exists := rl.requests[client]; exists {
		rl.requests[client] = pruneBefore(times, windowStart)
	}

	if len(rl.requests[client]) >= rl.limit {
		return false
	}

	rl.requests[client] = append(rl.requests[client], now)
	return true
}

// GetRemainingRequests returns how many attempts the client has left in
// the current window.
func (rl *RateLimiter) GetRemainingRequests(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := time.Now().Add(-rl.window)

	if times, exists := rl.requests[client]; exists {
		return rl.limit - len(pruneBefore(times, windowStart))
	}
	return rl.limit
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}
