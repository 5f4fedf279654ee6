// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/clean-auth/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	usersTable        = "users"
	oneTimeCodesTable = "one_time_codes"

	upsertOneTimeCodeConflict = "ON CONFLICT (contact_type, contact, purpose) DO UPDATE SET " +
		"code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, " +
		"is_used = FALSE, used_at = NULL, updated_at = NOW()"
)

var userColumns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"password_hash",
	"is_active",
	"email_verified",
	"created_at",
	"updated_at",
}

var oneTimeCodeColumns = []string{
	"id",
	"contact",
	"contact_type",
	"code",
	"purpose",
	"expires_at",
	"is_used",
	"used_at",
	"created_at",
	"updated_at",
}

func buildCreateUserQuery(user models.User) (string, []any, error) {
	query, args, err := psql.Insert(usersTable).
		Columns("id", "email", "first_name", "last_name", "password_hash", "is_active", "email_verified").
		Values(user.UserID, user.Email, user.FirstName, user.LastName, nullableString(user.PasswordHash), user.IsActive, user.EmailVerified).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	query, args, err := psql.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertOneTimeCodeQuery(code models.OneTimeCode) (string, []any, error) {
	query, args, err := psql.Insert(oneTimeCodesTable).
		Columns("contact", "contact_type", "code", "purpose", "expires_at").
		Values(code.Contact, string(code.ContactType), code.Code, string(code.Purpose), code.ExpiresAt).
		Suffix(upsertOneTimeCodeConflict).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// liveCodeFilter matches the unused, unexpired row holding code's value.
func liveCodeFilter(code models.OneTimeCode, now time.Time) sq.And {
	return sq.And{
		sq.Eq{
			"contact":      code.Contact,
			"contact_type": string(code.ContactType),
			"purpose":      string(code.Purpose),
			"code":         code.Code,
			"is_used":      false,
		},
		sq.Gt{"expires_at": now},
	}
}

func buildFindLiveCodeQuery(code models.OneTimeCode, now time.Time) (string, []any, error) {
	query, args, err := psql.Select(oneTimeCodeColumns...).
		From(oneTimeCodesTable).
		Where(liveCodeFilter(code, now)).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildConsumeCodeQuery(code models.OneTimeCode, now time.Time) (string, []any, error) {
	query, args, err := psql.Update(oneTimeCodesTable).
		Set("is_used", true).
		Set("used_at", now).
		Set("updated_at", now).
		Where(liveCodeFilter(code, now)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteStaleCodesQuery(before time.Time) (string, []any, error) {
	query, args, err := psql.Delete(oneTimeCodesTable).
		Where(sq.Or{
			sq.Lt{"expires_at": before},
			sq.And{sq.Eq{"is_used": true}, sq.Lt{"used_at": before}},
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
