package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"

	googleUserInfoURL    = "https://openidconnect.googleapis.com/v1/userinfo"
	googleRequestTimeout = 10 * time.Second
)

// googleUserInfo is the OpenID Connect userinfo response.
type googleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

type googleProvider struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	client      *utils.HTTPClient

	logger *logger.Logger
}

// NewGoogleProvider returns the Google implementation of OAuthProvider.
func NewGoogleProvider(cfg config.Google, log *logger.Logger) OAuthProvider {
	return newGoogleProvider(cfg, google.Endpoint, googleUserInfoURL, log)
}

func newGoogleProvider(cfg config.Google, endpoint oauth2.Endpoint, userInfoURL string, log *logger.Logger) *googleProvider {
	return &googleProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfoURL,
		client:      utils.NewHTTPClient(googleRequestTimeout),
		logger:      log.WithComponent("google-oauth"),
	}
}

func (p *googleProvider) Name() string {
	return ProviderGoogle
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange redeems code at the token endpoint and reads the user's profile
// from the userinfo endpoint with the resulting access token.
func (p *googleProvider) Exchange(ctx context.Context, code string) (models.ProviderProfile, error) {
	exchangeCtx, cancel := context.WithTimeout(ctx, googleRequestTimeout)
	defer cancel()

	token, err := p.oauthConfig.Exchange(exchangeCtx, code)
	if err != nil {
		p.logger.Err(err).Msg("authorization code exchange failed")
		return models.ProviderProfile{}, fmt.Errorf("%w: %w", ErrOAuthExchangeFailed, err)
	}

	var info googleUserInfo
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&info).
		Get(p.userInfoURL)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: userinfo request: %w", ErrProviderUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		p.logger.Err(err).Msg("userinfo request rejected")
		return models.ProviderProfile{}, err
	}
	if info.Subject == "" {
		return models.ProviderProfile{}, fmt.Errorf("%w: userinfo without subject", ErrBadProviderResponse)
	}

	return models.ProviderProfile{
		Provider:      ProviderGoogle,
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
	}, nil
}
