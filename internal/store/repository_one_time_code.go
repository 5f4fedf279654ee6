// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/models"
)

// oneTimeCodeRepository is the PostgreSQL-backed [OneTimeCodeRepository].
// The UNIQUE (contact_type, contact, purpose) constraint keeps at most one
// row per key; concurrent consumers race on a conditional UPDATE.
type oneTimeCodeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOneTimeCodeRepository constructs a [OneTimeCodeRepository] backed by db.
func NewOneTimeCodeRepository(db *DB, logger *logger.Logger) OneTimeCodeRepository {
	logger.Debug().Msg("creating one-time code repository")
	return &oneTimeCodeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *oneTimeCodeRepository) UpsertOneTimeCode(ctx context.Context, code models.OneTimeCode) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertOneTimeCodeQuery(code)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.UpsertOneTimeCode").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.UpsertOneTimeCode").Msg("error upserting one-time code")
		return r.db.wrapError(ErrExecutingQuery, err)
	}

	return nil
}

func (r *oneTimeCodeRepository) FindLiveCode(ctx context.Context, code models.OneTimeCode, now time.Time) (models.OneTimeCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindLiveCodeQuery(code, now)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.FindLiveCode").Msg("error building query")
		return models.OneTimeCode{}, err
	}

	var (
		found  models.OneTimeCode
		usedAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&found.ID,
		&found.Contact,
		&found.ContactType,
		&found.Code,
		&found.Purpose,
		&found.ExpiresAt,
		&found.IsUsed,
		&usedAt,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.OneTimeCode{}, ErrOneTimeCodeNotFound
	case err != nil:
		log.Err(err).Str("func", "*oneTimeCodeRepository.FindLiveCode").Msg("error selecting one-time code")
		return models.OneTimeCode{}, r.db.wrapError(ErrExecutingQuery, err)
	}

	if usedAt.Valid {
		found.UsedAt = &usedAt.Time
	}

	return found, nil
}

func (r *oneTimeCodeRepository) ConsumeCode(ctx context.Context, code models.OneTimeCode, now time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeCodeQuery(code, now)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.ConsumeCode").Msg("error building query")
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.ConsumeCode").Msg("error consuming one-time code")
		return false, r.db.wrapError(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: rows affected: %w", ErrExecutingQuery, err)
	}

	return affected == 1, nil
}

func (r *oneTimeCodeRepository) DeleteStaleCodes(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteStaleCodesQuery(before)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.DeleteStaleCodes").Msg("error building query")
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*oneTimeCodeRepository.DeleteStaleCodes").Msg("error deleting stale codes")
		return 0, r.db.wrapError(ErrExecutingQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}
