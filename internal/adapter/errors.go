package adapter

import "errors"

var (
	ErrInvalidMessageHeader = errors.New("invalid message header")
	ErrSMTPAuthUnsupported  = errors.New("smtp server does not support authentication")

	ErrOAuthExchangeFailed  = errors.New("oauth code exchange failed")
	ErrProviderUnauthorized = errors.New("identity provider rejected the access token")
	ErrProviderUnavailable  = errors.New("identity provider unavailable")
	ErrBadProviderResponse  = errors.New("unexpected identity provider response")
)
