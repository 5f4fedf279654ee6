package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Ping(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer conn.Close()
	db := newDB(conn, logger.Nop())

	mock.ExpectPing()
	assert.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = db.Ping(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
}

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, Permanent},
		{"plain error", errors.New("boom"), Permanent},
		{"bad conn", driver.ErrBadConn, Transient},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), Transient},
		{"unique violation", pgError(pgerrcode.UniqueViolation), Conflict},
		{"foreign key violation", pgError(pgerrcode.ForeignKeyViolation), Permanent},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Transient},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Transient},
		{"admin shutdown", pgError(pgerrcode.AdminShutdown), Transient},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Transient},
		{"disk full", pgError(pgerrcode.DiskFull), Transient},
		{"undefined table", pgError(pgerrcode.UndefinedTable), Permanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestDB_wrapError(t *testing.T) {
	db, _ := newTestDB(t)

	transient := db.wrapError(ErrExecutingQuery, driver.ErrBadConn)
	assert.ErrorIs(t, transient, ErrExecutingQuery)
	assert.ErrorIs(t, transient, ErrDatabaseUnavailable)
	assert.ErrorIs(t, transient, driver.ErrBadConn)

	permanent := db.wrapError(ErrExecutingQuery, pgError(pgerrcode.UndefinedColumn))
	assert.ErrorIs(t, permanent, ErrExecutingQuery)
	assert.NotErrorIs(t, permanent, ErrDatabaseUnavailable)
}
