package rate_limiter

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// RateLimiter allows at most limit calls per key within a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key := range rl.requests {
				if len(rl.pruneLocked(key)) == 0 {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// IsAllowed records a call for key and reports whether it is within the limit.
// Rejected calls are not recorded.
func (rl *RateLimiter) IsAllowed(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.pruneLocked(key)) >= rl.limit {
		return false
	}

	rl.requests[key] = append(rl.requests[key], rl.now())
	return true
}

func (rl *RateLimiter) GetRemainingRequests(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return max(rl.limit-len(rl.pruneLocked(key)), 0)
}

// ResetAt is when the oldest call for key leaves the window.
func (rl *RateLimiter) ResetAt(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	times := rl.pruneLocked(key)
	if len(times) == 0 {
		return rl.now()
	}
	return times[0].Add(rl.window)
}

func (rl *RateLimiter) pruneLocked(key string) []time.Time {
	windowStart := rl.now().Add(-rl.window)
	valid := lo.Filter(rl.requests[key], func(t time.Time, _ int) bool {
		return t.After(windowStart)
	})
	if len(valid) == 0 {
		delete(rl.requests, key)
		return nil
	}
	rl.requests[key] = valid
	return valid
}
