package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyPassword      = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes long")
	ErrPasswordComplexity = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrEmptyFirstName     = errors.New("first name is required")
	ErrEmptyLastName      = errors.New("last name is required")
	ErrInvalidOTP         = errors.New("OTP must be 6 digits")
	ErrEmptyProvider      = errors.New("provider is required")
	ErrUnverifiedEmail    = errors.New("email is not verified by the provider")
)

// IsPasswordPolicyError reports whether err is a password strength failure
// rather than a missing or malformed field.
func IsPasswordPolicyError(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordTooLong) ||
		errors.Is(err, ErrPasswordComplexity)
}
