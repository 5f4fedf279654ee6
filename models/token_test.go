package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestToken_ExpiresIn(t *testing.T) {
	now := time.Now()

	assert.Zero(t, Token{}.ExpiresIn(now))

	live := Token{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}
	assert.InDelta(t, time.Hour.Seconds(), live.ExpiresIn(now).Seconds(), 1)

	expired := Token{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
	assert.Zero(t, expired.ExpiresIn(now))
}
