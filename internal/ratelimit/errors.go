package ratelimit

import "errors"

var (
	ErrUnknownBackend  = errors.New("unknown rate limit backend")
	ErrNoRedisClient   = errors.New("redis rate limit backend requires a redis client")
	ErrLimiterFailure  = errors.New("rate limiter failure")
	ErrInvalidSettings = errors.New("rate limit attempts and window must be positive")
)
