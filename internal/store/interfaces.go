package store

import (
	"context"
	"time"

	"github.com/MKhiriev/clean-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts in the users table.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row. A duplicate email
	// yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrNoUserWasFound] when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no row matches.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// OneTimeCodeRepository persists one-time codes keyed by
// (contact_type, contact, purpose).
type OneTimeCodeRepository interface {
	// UpsertOneTimeCode inserts code or replaces the existing row for the
	// same key, resetting its used state.
	UpsertOneTimeCode(ctx context.Context, code models.OneTimeCode) error
	// FindLiveCode returns the row matching code's key and value that is
	// unused and expires after now, or [ErrOneTimeCodeNotFound].
	FindLiveCode(ctx context.Context, code models.OneTimeCode, now time.Time) (models.OneTimeCode, error)
	// ConsumeCode marks the matching live row as used. It reports false when
	// no row transitioned, so only one of several concurrent callers wins.
	ConsumeCode(ctx context.Context, code models.OneTimeCode, now time.Time) (bool, error)
	// DeleteStaleCodes removes rows that expired, or were used, before the
	// given instant and returns how many were deleted.
	DeleteStaleCodes(ctx context.Context, before time.Time) (int64, error)
}

// HealthChecker reports whether the backing database answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator sorts driver errors into permanent, transient and
// conflicting failures.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
