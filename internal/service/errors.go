package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrPasswordPolicy          = errors.New("password does not meet requirements")
	ErrInvalidProviderProfile  = errors.New("invalid identity provider profile")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrNoPasswordSet           = errors.New("no password set for this account")
	ErrUserExists              = errors.New("user already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidOrExpiredCode    = errors.New("invalid or expired code")
	ErrDeliveryFailed          = errors.New("code delivery failed")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
