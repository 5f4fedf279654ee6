// Package migrations holds the PostgreSQL schema for users and one-time
// codes, embedded and applied with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

var ErrNilDB = errors.New("migration error: db is nil")

// Migrate brings the schema up to date and returns the versions it applied,
// oldest first. An up-to-date schema yields no versions.
func Migrate(ctx context.Context, db *sql.DB) ([]int64, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, schema)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
