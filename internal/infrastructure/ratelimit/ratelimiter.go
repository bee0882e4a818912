// Package ratelimit throttles creation routes per actor.
package ratelimit

import (
	"context"
	"time"
)

// Limits of zero disable the corresponding window.
type Limits struct {
	PerMinute int
	PerHour   int
}

type window struct {
	duration time.Duration
	limit    int
}

func (l Limits) windows() []window {
	return []window{
		{time.Minute, l.PerMinute},
		{time.Hour, l.PerHour},
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}
