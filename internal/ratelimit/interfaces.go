// Package ratelimit bounds how often a client may hit the authentication
// endpoints. Two backends share the Limiter interface: an in-process token
// bucket per key, and a fixed window counter in Redis for deployments with
// more than one instance.
package ratelimit

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/ratelimit_mock.go -package=mock

// Limiter decides whether one more attempt under key is allowed.
type Limiter interface {
	// Allow records an attempt and reports whether it is within the limit.
	// A non-nil error means the decision could not be made.
	Allow(ctx context.Context, key string) (bool, error)
}
