package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/clean-auth/internal/validators"
	"github.com/MKhiriev/clean-auth/models"
)

// authValidationService rejects malformed requests before they reach the
// wrapped AuthService, so no store call is made for them.
type authValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &authValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *authValidationService) Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, request)
}

func (v *authValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		if validators.IsPasswordPolicyError(err) {
			return models.AuthResult{}, fmt.Errorf("%w: %w", ErrPasswordPolicy, err)
		}
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, request)
}

func (v *authValidationService) SendOTP(ctx context.Context, request models.SendOTPRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SendOTP(ctx, request)
}

func (v *authValidationService) VerifyOTP(ctx context.Context, request models.VerifyOTPRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.VerifyOTP(ctx, request)
}

func (v *authValidationService) LoginWithProvider(ctx context.Context, profile models.ProviderProfile) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, profile); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidProviderProfile, err)
	}

	return v.inner.LoginWithProvider(ctx, profile)
}

func (v *authValidationService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return v.inner.CurrentUser(ctx, userID)
}

func (v *authValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if user.UserID == "" {
		return models.Token{}, fmt.Errorf("%w: empty user id", ErrTokenCreationFailed)
	}

	return v.inner.CreateToken(ctx, user)
}

func (v *authValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return v.inner.ParseToken(ctx, tokenString)
}

func (v *authValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
