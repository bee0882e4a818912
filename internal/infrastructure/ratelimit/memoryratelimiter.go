package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is the single-process fallback used when redis is
// disabled. It implements the same sliding log as the redis limiter.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{hits: make(map[string][]time.Time), now: time.Now}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limits Limits) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	longest := time.Duration(0)
	for _, w := range limits.windows() {
		if w.limit > 0 && w.duration > longest {
			longest = w.duration
		}
	}
	hits := prune(l.hits[key], now.Add(-longest))

	allowed := true
	for _, w := range limits.windows() {
		if w.limit <= 0 {
			continue
		}
		if countSince(hits, now.Add(-w.duration)) >= w.limit {
			allowed = false
		}
	}

	// Denied requests still count, matching the redis limiter.
	l.hits[key] = append(hits, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
	return nil
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

func countSince(hits []time.Time, cutoff time.Time) int {
	n := 0
	for _, h := range hits {
		if h.After(cutoff) {
			n++
		}
	}
	return n
}
