package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client used for
// outbound calls to identity providers.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10 * time.Second)
//	resp, err := client.R().SetAuthToken(accessToken).Get(userInfoURL)
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client with JSON accept headers and the given
// per-request timeout. A zero timeout leaves requests bounded only by their
// context.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "clean-auth")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
