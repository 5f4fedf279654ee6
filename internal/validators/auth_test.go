package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/clean-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		Password:  "Passw0rd1",
	}
}

func TestNewAuthValidator(t *testing.T) {
	v := NewAuthValidator()
	require.NotNil(t, v)
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	login := models.LoginRequest{Email: "ann@example.com", Password: "x"}
	register := validRegisterRequest()
	send := models.SendOTPRequest{Email: "ann@example.com"}
	verify := models.VerifyOTPRequest{Email: "ann@example.com", OTP: "123456"}
	profile := models.ProviderProfile{Provider: "google", Email: "ann@example.com", EmailVerified: true}

	tests := []struct {
		name string
		obj  any
	}{
		{"login value", login},
		{"login pointer", &login},
		{"register value", register},
		{"register pointer", &register},
		{"send otp value", send},
		{"send otp pointer", &send},
		{"verify otp value", verify},
		{"verify otp pointer", &verify},
		{"provider profile value", profile},
		{"provider profile pointer", &profile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(ctx, tt.obj))
		})
	}
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewAuthValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.User{}), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{}, "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.RegisterRequest{}, FieldOTP), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.SendOTPRequest{}, FieldPassword), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.VerifyOTPRequest{}, FieldFirstName), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.ProviderProfile{}, FieldOTP), ErrUnknownField)
}

func TestValidate_Email(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain", "ann@example.com", false},
		{"subaddress", "ann+tag@example.co.uk", false},
		{"empty", "", true},
		{"no at", "ann.example.com", true},
		{"no domain", "ann@", true},
		{"display name", "Ann <ann@example.com>", true},
		{"angle brackets", "<ann@example.com>", true},
		{"leading space", " ann@example.com", true},
		{"trailing space", "ann@example.com ", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, models.SendOTPRequest{Email: tt.email})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_LoginRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	// login does not apply the registration policy
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "ann@example.com", Password: "weak"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "ann@example.com"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Password: "x"}), ErrInvalidEmail)
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{"valid", func(r *models.RegisterRequest) {}, nil},
		{"missing first name", func(r *models.RegisterRequest) { r.FirstName = "" }, ErrEmptyFirstName},
		{"blank first name", func(r *models.RegisterRequest) { r.FirstName = "   " }, ErrEmptyFirstName},
		{"missing last name", func(r *models.RegisterRequest) { r.LastName = "" }, ErrEmptyLastName},
		{"invalid email", func(r *models.RegisterRequest) { r.Email = "nope" }, ErrInvalidEmail},
		{"missing password", func(r *models.RegisterRequest) { r.Password = "" }, ErrEmptyPassword},
		{"too short", func(r *models.RegisterRequest) { r.Password = "Pa55wor" }, ErrPasswordTooShort},
		{"no uppercase", func(r *models.RegisterRequest) { r.Password = "passw0rd1" }, ErrPasswordComplexity},
		{"no lowercase", func(r *models.RegisterRequest) { r.Password = "PASSW0RD1" }, ErrPasswordComplexity},
		{"no digit", func(r *models.RegisterRequest) { r.Password = "Password" }, ErrPasswordComplexity},
		{"too long", func(r *models.RegisterRequest) { r.Password = "Aa1" + strings.Repeat("x", 70) }, ErrPasswordTooLong},
		{"exactly eight", func(r *models.RegisterRequest) { r.Password = "Abcdefg1" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_RegisterRequest_FieldScoping(t *testing.T) {
	v := NewAuthValidator()
	req := validRegisterRequest()
	req.Password = "weak"

	assert.NoError(t, v.Validate(context.Background(), req, FieldEmail, FieldPassword))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldPasswordPolicy), ErrPasswordTooShort)
}

func TestValidate_VerifyOTPRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		otp     string
		wantErr bool
	}{
		{"six digits", "123456", false},
		{"leading zero", "012345", false},
		{"five digits", "12345", true},
		{"seven digits", "1234567", true},
		{"letters", "12a456", true},
		{"empty", "", true},
		{"unicode digits", "١٢٣٤٥٦", true},
		{"signed", "+12345", true},
		{"decimal", "12.456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, models.VerifyOTPRequest{Email: "ann@example.com", OTP: tt.otp})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOTP)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ProviderProfile(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ProviderProfile{Email: "ann@example.com", EmailVerified: true}), ErrEmptyProvider)
	assert.ErrorIs(t, v.Validate(ctx, models.ProviderProfile{Provider: "google", EmailVerified: true}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.ProviderProfile{Provider: "google", Email: "ann@example.com"}), ErrUnverifiedEmail)
}

func TestIsPasswordPolicyError(t *testing.T) {
	assert.True(t, IsPasswordPolicyError(ErrPasswordTooShort))
	assert.True(t, IsPasswordPolicyError(ErrPasswordTooLong))
	assert.True(t, IsPasswordPolicyError(ErrPasswordComplexity))
	assert.False(t, IsPasswordPolicyError(ErrInvalidEmail))
	assert.False(t, IsPasswordPolicyError(nil))
}
