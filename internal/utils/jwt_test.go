package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testUserID = "0190f6c4-5c5e-7b6a-9a0e-3f1d2c4b5a69"

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	duration := time.Hour
	key := "secret-key"
	now := time.Now().Truncate(time.Second)

	token, err := GenerateJWTToken(issuer, testUserID, duration, key, now)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if got := token.ExpiresIn(now); got != duration {
		t.Errorf("expected token to expire in %s, got %s", duration, got)
	}
	if token.UserID != testUserID {
		t.Errorf("expected userID %s, got %s", testUserID, token.UserID)
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if got := token.ExpiresAt.Sub(token.IssuedAt.Time); got != duration {
		t.Errorf("expected exp - iat = %s, got %s", duration, got)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", testUserID, time.Hour, "key"},
		{"empty user id", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", testUserID, 0, "key"},
		{"empty key", "iss", testUserID, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key, time.Now())
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	genToken, _ := GenerateJWTToken(issuer, testUserID, 5*time.Minute, key, time.Now())

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.UserID != testUserID {
		t.Errorf("expected userID %s, got %s", testUserID, parsedToken.UserID)
	}
	if parsedToken.SignedString != genToken.SignedString {
		t.Error("expected signed string to be carried over")
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", testUserID, time.Hour, "correct-key", time.Now())

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "test-issuer")
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issuer := "test-issuer"
	key := "key"
	genToken, _ := GenerateJWTToken(issuer, testUserID, time.Hour, key, time.Now().Add(-2*time.Hour))

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("real-issuer", testUserID, time.Hour, key, time.Now())

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	key := "key"
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, key, "iss")
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error for HS512 token, got %v", err)
	}
}

func TestValidateAndParseJWTToken_EmptySubject(t *testing.T) {
	key := "key"
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))

	_, err := ValidateAndParseJWTToken(signed, key, "iss")
	if err == nil {
		t.Error("expected error for token without subject, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc", want: "abc"},
		{header: "  Bearer   abc  ", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationHeader) {
					t.Errorf("expected ErrInvalidAuthorizationHeader, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
