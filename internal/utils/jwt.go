package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/clean-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidAuthorizationHeader means the header is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	errInvalidTokenParams = errors.New("issuer, user id, duration and sign key are required")
	errEmptySubject       = errors.New("token has no subject")
)

// GenerateJWTToken signs an HS256 session token for userID. The claims are
// iss, sub, iat = now and exp = now + tokenDuration.
func GenerateJWTToken(issuer, userID string, tokenDuration time.Duration, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errInvalidTokenParams
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing session token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken accepts only HS256 tokens signed with
// tokenSignKey, issued by tokenIssuer, unexpired and carrying a subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(tokenSignKey), nil },
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating session token: %w", err)
	}
	if claims.Subject == "" {
		return models.Token{}, errEmptySubject
	}

	return models.Token{RegisteredClaims: claims, SignedString: tokenString, UserID: claims.Subject}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
