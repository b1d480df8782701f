package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdesk/task-manager/internal/core/ports"
)

const keyPrefix = "rl:"

// incrExpire increments the window counter, starts the window on the first
// hit and returns the count together with the remaining window in ms.
var incrExpire = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// FixedWindowLimiter counts requests per key in fixed windows stored in Redis.
// Key format: rl:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewFixedWindowLimiter allows max requests per key in each window.
func NewFixedWindowLimiter(client *redis.Client, max int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, max: max, window: window}
}

// Allow records one hit for key and reports whether it is within the limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	res, err := incrExpire.Run(ctx, l.client, []string{keyPrefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if len(res) != 2 {
		return ports.RateDecision{}, fmt.Errorf("rate limit incr: unexpected reply %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if ttl < 0 {
		ttl = l.window
	}
	return decide(l.max, count, ttl), nil
}

func decide(max, count int, ttl time.Duration) ports.RateDecision {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:   count <= max,
		Limit:     max,
		Remaining: remaining,
		ResetIn:   ttl,
	}
}
