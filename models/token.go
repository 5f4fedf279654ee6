package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed session credential. The subject claim holds the user id.
type Token struct {
	jwt.RegisteredClaims

	SignedString string `json:"-"`
	UserID       string `json:"-"`
}

// ExpiresIn returns the time left before the token expires, or zero when it
// has no expiry or has already expired.
func (t Token) ExpiresIn(now time.Time) time.Duration {
	if t.ExpiresAt == nil {
		return 0
	}
	return max(t.ExpiresAt.Sub(now), 0)
}

func (t Token) String() string {
	return t.SignedString
}
