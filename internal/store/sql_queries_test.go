// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/clean-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildCreateUserQuery(t *testing.T) {
	tests := []struct {
		name         string
		user         models.User
		wantPassword any
	}{
		{
			name:         "with password",
			user:         models.User{UserID: "u1", Email: "a@b.co", FirstName: "A", LastName: "B", PasswordHash: "h", IsActive: true, EmailVerified: true},
			wantPassword: "h",
		},
		{
			name:         "without password",
			user:         models.User{UserID: "u2", Email: "c@d.co", FirstName: "User", LastName: "Name", IsActive: true, EmailVerified: true},
			wantPassword: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildCreateUserQuery(tt.user)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "INSERT INTO users (id,email,first_name,last_name,password_hash,is_active,email_verified) VALUES ($1,$2,$3,$4,$5,$6,$7)"))
			assert.Contains(t, query, "RETURNING id, email, first_name, last_name, password_hash, is_active, email_verified, created_at, updated_at")

			require.Len(t, args, 7)
			assert.Equal(t, tt.user.UserID, args[0])
			assert.Equal(t, tt.user.Email, args[1])
			assert.Equal(t, tt.wantPassword, args[4])
			assert.Equal(t, true, args[5])
			assert.Equal(t, true, args[6])
		})
	}
}

func Test_buildFindUserQuery(t *testing.T) {
	query, args, err := buildFindUserQuery(sq.Eq{"email": "a@b.co"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, email, first_name, last_name, password_hash, is_active, email_verified, created_at, updated_at FROM users WHERE email = $1 LIMIT 1", query)
	assert.Equal(t, []any{"a@b.co"}, args)
}

// Test_buildUpsertOneTimeCodeQuery verifies that a resend replaces the code,
// the expiry and clears the used state of the existing row.
func Test_buildUpsertOneTimeCodeQuery(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpsertOneTimeCodeQuery(models.OneTimeCode{
		Contact:     "a@b.co",
		ContactType: models.ContactTypeEmail,
		Code:        "123456",
		Purpose:     models.PurposeLogin,
		ExpiresAt:   expiresAt,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO one_time_codes (contact,contact_type,code,purpose,expires_at) VALUES ($1,$2,$3,$4,$5)"))
	assert.Contains(t, query, "ON CONFLICT (contact_type, contact, purpose) DO UPDATE SET")
	assert.Contains(t, query, "code = EXCLUDED.code")
	assert.Contains(t, query, "expires_at = EXCLUDED.expires_at")
	assert.Contains(t, query, "is_used = FALSE")
	assert.Contains(t, query, "used_at = NULL")
	assert.Equal(t, []any{"a@b.co", "email", "123456", "login", expiresAt}, args)
}

func Test_buildFindLiveCodeQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildFindLiveCodeQuery(models.OneTimeCode{
		Contact:     "a@b.co",
		ContactType: models.ContactTypeEmail,
		Code:        "654321",
		Purpose:     models.PurposeLogin,
	}, now)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM one_time_codes WHERE (code = $1 AND contact = $2 AND contact_type = $3 AND is_used = $4 AND purpose = $5 AND expires_at > $6) LIMIT 1")
	assert.Equal(t, []any{"654321", "a@b.co", "email", false, "login", now}, args)
}

// Test_buildConsumeCodeQuery verifies that consumption is conditional on the
// row still being live, which makes concurrent consumers race safely.
func Test_buildConsumeCodeQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildConsumeCodeQuery(models.OneTimeCode{
		Contact:     "a@b.co",
		ContactType: models.ContactTypeEmail,
		Code:        "654321",
		Purpose:     models.PurposeLogin,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE one_time_codes SET is_used = $1, used_at = $2, updated_at = $3 WHERE (code = $4 AND contact = $5 AND contact_type = $6 AND is_used = $7 AND purpose = $8 AND expires_at > $9)", query)
	assert.Equal(t, []any{true, now, now, "654321", "a@b.co", "email", false, "login", now}, args)
}

func Test_buildDeleteStaleCodesQuery(t *testing.T) {
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildDeleteStaleCodesQuery(before)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM one_time_codes WHERE (expires_at < $1 OR (is_used = $2 AND used_at < $3))", query)
	assert.Equal(t, []any{before, true, before}, args)
}
