package store

import "github.com/MKhiriev/clean-auth/internal/logger"

// Repositories groups every repository backed by one database handle.
type Repositories struct {
	UserRepository        UserRepository
	OneTimeCodeRepository OneTimeCodeRepository
	HealthChecker         HealthChecker
}

// NewRepositories constructs all repositories on top of db.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db, logger),
		OneTimeCodeRepository: NewOneTimeCodeRepository(db, logger),
		HealthChecker:         db,
	}
}
