// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"fmt"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/redis/go-redis/v9"
)

// New builds the limiter selected by cfg.Backend. redisClient is only used,
// and then required, by the redis backend.
func New(cfg config.RateLimit, redisClient *redis.Client) (Limiter, error) {
	switch cfg.Backend {
	case config.RateLimitBackendMemory:
		return NewMemoryLimiter(cfg.Attempts, cfg.Window)
	case config.RateLimitBackendRedis:
		if redisClient == nil {
			return nil, ErrNoRedisClient
		}
		return NewRedisLimiter(redisClient, cfg.Attempts, cfg.Window)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Key scopes a client address to one group of endpoints, so that login
// attempts do not consume the OTP budget.
func Key(group, clientIP string) string {
	return group + ":" + clientIP
}
