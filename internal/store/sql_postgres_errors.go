package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells a repository how to report a failed statement.
type ErrorClassification int

const (
	// Permanent failures repeat for the same input: bad SQL, data or schema errors.
	Permanent ErrorClassification = iota
	// Transient failures come from the connection or server state.
	// Callers surface them as ErrDatabaseUnavailable.
	Transient
	// Conflict is a unique constraint violation, e.g. a concurrent
	// registration of the same email.
	Conflict
)

// PostgresErrorClassifier implements ErrorClassificator for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Permanent
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr.Code)
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err),
		pgconn.SafeToRetry(err),
		errors.As(err, &netErr):
		return Transient
	}
	return Permanent
}

// ClassifyPgError maps a SQLSTATE code to its classification.
func ClassifyPgError(code string) ErrorClassification {
	switch {
	case code == pgerrcode.UniqueViolation:
		return Conflict
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsOperatorIntervention(code),
		pgerrcode.IsInsufficientResources(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.LockNotAvailable,
		code == pgerrcode.TooManyConnections:
		return Transient
	}
	return Permanent
}
