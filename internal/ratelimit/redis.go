package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// incrWithTTL counts an attempt and starts the window on the first one.
// Running both commands in one script keeps a counter from living without
// an expiry.
var incrWithTTL = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// redisLimiter is a fixed window counter shared by every instance that
// talks to the same Redis.
type redisLimiter struct {
	client   redis.Scripter
	attempts int64
	window   time.Duration
}

func NewRedisLimiter(client redis.Scripter, attempts int, window time.Duration) (Limiter, error) {
	if client == nil {
		return nil, ErrNoRedisClient
	}
	if attempts <= 0 || window <= 0 {
		return nil, ErrInvalidSettings
	}

	return &redisLimiter{
		client:   client,
		attempts: int64(attempts),
		window:   window,
	}, nil
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrWithTTL.Run(ctx, l.client, []string{redisKeyPrefix + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrLimiterFailure, err)
	}

	return count <= l.attempts, nil
}
