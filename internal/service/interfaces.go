package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AuthServiceWrapper

import (
	"context"

	"github.com/MKhiriev/clean-auth/models"
)

// AuthService is the decision engine behind every authentication pathway.
// Each successful pathway ends with a signed token for the resolved user.
type AuthService interface {
	Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error)
	Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error)

	SendOTP(ctx context.Context, request models.SendOTPRequest) error
	VerifyOTP(ctx context.Context, request models.VerifyOTPRequest) (models.AuthResult, error)

	// LoginWithProvider accepts an identity already verified by a trusted
	// provider and resolves it to a user, provisioning one if needed.
	LoginWithProvider(ctx context.Context, profile models.ProviderProfile) (models.AuthResult, error)

	CurrentUser(ctx context.Context, userID string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the backing store is reachable.
type HealthService interface {
	CheckStore(ctx context.Context) error
}
