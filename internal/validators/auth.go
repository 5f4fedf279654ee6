// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/MKhiriev/clean-auth/models"
	"github.com/go-playground/validator/v10"
)

// Field name constants accepted by AuthValidator.Validate to restrict
// validation to a subset of fields.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPasswordPolicy = "password_policy"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldOTP            = "otp"
	FieldProvider       = "provider"
	FieldEmailVerified  = "email_verified"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72
)

// Tags checked with go-playground/validator. The password policy is not
// expressible as tags and stays in validatePasswordPolicy.
const (
	tagEmail    = "required,max=254,email"
	tagRequired = "required"
	tagOTP      = "len=6,number"
)

var validate = validator.New()

// AuthValidator validates the request models of every authentication
// pathway: LoginRequest, RegisterRequest, SendOTPRequest, VerifyOTPRequest
// and ProviderProfile. Values and pointers are both accepted.
type AuthValidator struct {
}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.SendOTPRequest:
		return v.validateSendOTPRequest(value, fields...)
	case *models.SendOTPRequest:
		return v.validateSendOTPRequest(*value, fields...)

	case models.VerifyOTPRequest:
		return v.validateVerifyOTPRequest(value, fields...)
	case *models.VerifyOTPRequest:
		return v.validateVerifyOTPRequest(*value, fields...)

	case models.ProviderProfile:
		return v.validateProviderProfile(value, fields...)
	case *models.ProviderProfile:
		return v.validateProviderProfile(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := check(request.Password, tagRequired, ErrEmptyPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldPasswordPolicy}
	}

	for _, f := range fields {
		switch f {
		case FieldFirstName:
			if err := check(strings.TrimSpace(request.FirstName), tagRequired, ErrEmptyFirstName); err != nil {
				return err
			}
		case FieldLastName:
			if err := check(strings.TrimSpace(request.LastName), tagRequired, ErrEmptyLastName); err != nil {
				return err
			}
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := check(request.Password, tagRequired, ErrEmptyPassword); err != nil {
				return err
			}
		case FieldPasswordPolicy:
			if err := validatePasswordPolicy(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateSendOTPRequest(request models.SendOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateVerifyOTPRequest(request models.VerifyOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldOTP}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldOTP:
			if err := check(request.OTP, tagOTP, ErrInvalidOTP); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateProviderProfile(profile models.ProviderProfile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProvider, FieldEmail, FieldEmailVerified}
	}

	for _, f := range fields {
		switch f {
		case FieldProvider:
			if err := check(profile.Provider, tagRequired, ErrEmptyProvider); err != nil {
				return err
			}
		case FieldEmail:
			if err := validateEmail(profile.Email); err != nil {
				return err
			}
		case FieldEmailVerified:
			if !profile.EmailVerified {
				return ErrUnverifiedEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEmail accepts a bare address. Display names, angle brackets and
// surrounding whitespace are rejected.
func validateEmail(email string) error {
	return check(email, tagEmail, ErrInvalidEmail)
}

// check runs the validator tag against value and reports any failure as
// sentinel, so callers can keep matching on the package errors.
func check(value any, tag string, sentinel error) error {
	if err := validate.Var(value, tag); err != nil {
		return sentinel
	}
	return nil
}

func validatePasswordPolicy(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordComplexity
	}

	return nil
}
