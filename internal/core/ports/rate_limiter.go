package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of one hit against a limiter.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RateLimiter counts hits per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
