package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps one token bucket per key. A bucket holds attempts
// tokens and regains one per window, so no interval shorter than window
// admits more than attempts calls.
type memoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time

	limit   rate.Limit
	burst   int
	window  time.Duration
	idleTTL time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(attempts int, window time.Duration) (Limiter, error) {
	return newMemoryLimiter(attempts, window, time.Now)
}

func newMemoryLimiter(attempts int, window time.Duration, now func() time.Time) (*memoryLimiter, error) {
	if attempts <= 0 || window <= 0 {
		return nil, ErrInvalidSettings
	}

	return &memoryLimiter{
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
		limit:     rate.Every(window),
		burst:     attempts,
		window:    window,
		// a bucket idle this long is full again and equal to a fresh one
		idleTTL: window * time.Duration(attempts),
		now:     now,
	}, nil
}

func (l *memoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.evictIdle(now)
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1), nil
}

func (l *memoryLimiter) evictIdle(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *memoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
