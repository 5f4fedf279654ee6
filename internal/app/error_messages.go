// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// clean-auth HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings written into the
// "message" field of JSON responses. Keeping them in one place keeps the
// wording consistent for the frontend.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or a required field is missing or malformed.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgPasswordPolicy is returned when a registration password does not
	// satisfy the password policy.
	MsgPasswordPolicy = "password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit"

	// MsgInvalidCredentials covers both an unknown email and a wrong password.
	MsgInvalidCredentials = "invalid email or password"

	// MsgNoPasswordSet is returned when the account exists but was created by
	// OTP or Google login and has no password.
	MsgNoPasswordSet = "Please use Google login or set a password"

	MsgUserExists = "User already exists"

	MsgInvalidOrExpiredCode = "Invalid or expired OTP"

	MsgOTPSent = "OTP sent to your email"

	MsgDeliveryFailed = "Failed to send OTP"

	MsgTooManyRequests = "too many requests, please try again later"

	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgUnauthorized = "unauthorized"

	MsgLoggedOut = "logged out"

	MsgNotFound = "not found"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)

// Error codes appended to the OAuth failure redirect as "?error=<code>".
const (
	OAuthErrorFailed       = "oauth_failed"
	OAuthErrorState        = "invalid_state"
	OAuthErrorDenied       = "access_denied"
	OAuthErrorUnverified   = "email_not_verified"
	OAuthErrorNotAvailable = "provider_not_configured"
)

// Database states reported by GET /health.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)
