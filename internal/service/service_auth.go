package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/clean-auth/internal/adapter"
	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/crypto"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/store"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
)

const otpSubject = "Your Login OTP"

// dummyPassword is hashed once at construction so that a login for an
// unknown email pays the same bcrypt cost as one for a known email.
const dummyPassword = "clean-auth-unknown-account"

type idGenerator interface {
	Generate() string
}

// authService is the concrete implementation of AuthService.
// It resolves every pathway to a single user row and issues an HS256 JWT
// for it. All state is read-only after construction.
type authService struct {
	userRepository store.UserRepository
	codeRepository store.OneTimeCodeRepository

	hasher        crypto.PasswordHasher
	dummyHash     string
	codeGenerator crypto.CodeGenerator
	notifier      adapter.Notifier
	ids           idGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// otpTTL is added to the send time to get a code's expiry.
	otpTTL time.Duration

	// notifyTimeout bounds a single delivery attempt. Zero means the request
	// context alone bounds it.
	notifyTimeout time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the given repositories and
// notifier, populated with security parameters from cfg.
func NewAuthService(repositories *store.Repositories, notifier adapter.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) AuthService {
	hasher := crypto.NewPasswordHasher(cfg.App.PasswordCost)
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Err(err).Msg("dummy password hash failed")
	}

	return &authService{
		userRepository: repositories.UserRepository,
		codeRepository: repositories.OneTimeCodeRepository,
		hasher:         hasher,
		dummyHash:      dummyHash,
		codeGenerator:  crypto.NewCodeGenerator(),
		notifier:       notifier,
		ids:            utils.NewIDGenerator(),
		tokenSignKey:   cfg.App.TokenSignKey,
		tokenIssuer:    cfg.App.TokenIssuer,
		tokenDuration:  cfg.App.TokenDuration,
		otpTTL:         cfg.App.OTPTTL,
		notifyTimeout:  cfg.Mail.Timeout,
		now:            time.Now,
		logger:         logger,
	}
}

// Login authenticates a user by email and password.
//
// An unknown email and a wrong password both return ErrInvalidCredentials.
// A user created through OTP or a provider has no password and gets
// ErrNoPasswordSet.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(request.Password, a.dummyHash)
		log.Debug().Msg("login attempt for unknown email")
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.HasPassword() {
		log.Debug().Str("user_id", user.UserID).Msg("login attempt for account without password")
		return models.AuthResult{}, ErrNoPasswordSet
	}

	if !a.hasher.Verify(request.Password, user.PasswordHash) {
		log.Debug().Str("user_id", user.UserID).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	return a.authenticate(ctx, user)
}

// Register creates a password account. The request is expected to have
// passed validation, including the password policy.
//
// An email that is already taken returns ErrUserExists, both when the
// pre-check finds it and when a concurrent registration wins the insert.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	switch {
	case err == nil:
		return models.AuthResult{}, ErrUserExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := a.newUser(request.Email, request.FirstName, request.LastName)
	user.PasswordHash = passwordHash

	created, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.AuthResult{}, ErrUserExists
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.UserID).Msg("user registered")
	return a.authenticate(ctx, created)
}

// SendOTP issues a fresh login code for the email, replacing any earlier
// one, and delivers it. If delivery fails the stored code is kept and
// ErrDeliveryFailed is returned.
func (a *authService) SendOTP(ctx context.Context, request models.SendOTPRequest) error {
	log := logger.FromContext(ctx)

	code, err := a.codeGenerator.Generate()
	if err != nil {
		log.Err(err).Msg("code generation failed")
		return fmt.Errorf("code generation failed: %w", err)
	}

	otp := loginCode(request.Email, code)
	otp.ExpiresAt = a.now().Add(a.otpTTL)

	if err = a.codeRepository.UpsertOneTimeCode(ctx, otp); err != nil {
		log.Err(err).Msg("saving one-time code failed")
		return fmt.Errorf("saving one-time code failed: %w", err)
	}

	sendCtx, cancel := a.notifyContext(ctx)
	defer cancel()

	if err = a.notifier.Send(sendCtx, request.Email, otpSubject, otpBody(code, a.otpTTL)); err != nil {
		log.Err(err).Msg("one-time code delivery failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}

// VerifyOTP redeems a login code. Wrong, expired and already used codes are
// reported identically as ErrInvalidOrExpiredCode. The first successful
// verification for an unknown email creates the account.
func (a *authService) VerifyOTP(ctx context.Context, request models.VerifyOTPRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)
	now := a.now()
	otp := loginCode(request.Email, request.OTP)

	_, err := a.codeRepository.FindLiveCode(ctx, otp, now)
	if errors.Is(err, store.ErrOneTimeCodeNotFound) {
		return models.AuthResult{}, ErrInvalidOrExpiredCode
	}
	if err != nil {
		log.Err(err).Msg("one-time code search failed")
		return models.AuthResult{}, fmt.Errorf("one-time code search failed: %w", err)
	}

	user, err := a.findOrCreateUser(ctx, request.Email, models.PlaceholderFirstName, models.PlaceholderLastName)
	if err != nil {
		return models.AuthResult{}, err
	}

	consumed, err := a.codeRepository.ConsumeCode(ctx, otp, now)
	if err != nil {
		log.Err(err).Msg("consuming one-time code failed")
		return models.AuthResult{}, fmt.Errorf("consuming one-time code failed: %w", err)
	}
	if !consumed {
		// a concurrent verification redeemed it first
		return models.AuthResult{}, ErrInvalidOrExpiredCode
	}

	return a.authenticate(ctx, user)
}

// LoginWithProvider accepts a profile asserted by an identity provider.
// Unknown emails are provisioned as passwordless accounts named after the
// profile, falling back to placeholders.
func (a *authService) LoginWithProvider(ctx context.Context, profile models.ProviderProfile) (models.AuthResult, error) {
	if profile.Email == "" || !profile.EmailVerified {
		return models.AuthResult{}, ErrInvalidProviderProfile
	}

	firstName := profile.GivenName
	if firstName == "" {
		firstName = models.PlaceholderFirstName
	}
	lastName := profile.FamilyName
	if lastName == "" {
		lastName = models.PlaceholderLastName
	}

	user, err := a.findOrCreateUser(ctx, profile.Email, firstName, lastName)
	if err != nil {
		return models.AuthResult{}, err
	}

	return a.authenticate(ctx, user)
}

// CurrentUser returns the user a token was issued to.
func (a *authService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, bad signature, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers cannot tell
// them apart.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) authenticate(ctx context.Context, user models.User) (models.AuthResult, error) {
	token, err := a.CreateToken(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.UserID).Msg("token creation failed")
		return models.AuthResult{}, err
	}

	return models.AuthResult{User: user, Token: token}, nil
}

// findOrCreateUser returns the user with the given email, creating a
// passwordless account when none exists. Losing the insert race to a
// concurrent request re-reads the winner's row.
func (a *authService) findOrCreateUser(ctx context.Context, email, firstName, lastName string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, a.newUser(email, firstName, lastName))
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		user, err = a.userRepository.FindUserByEmail(ctx, email)
		if err != nil {
			log.Err(err).Msg("user search after concurrent creation failed")
			return models.User{}, fmt.Errorf("user search after concurrent creation failed: %w", err)
		}
		return user, nil
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.UserID).Msg("user provisioned")
	return created, nil
}

func (a *authService) newUser(email, firstName, lastName string) models.User {
	return models.User{
		UserID:        a.ids.Generate(),
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		IsActive:      true,
		EmailVerified: true,
	}
}

func (a *authService) notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.notifyTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.notifyTimeout)
}

func loginCode(email, code string) models.OneTimeCode {
	return models.OneTimeCode{
		Contact:     email,
		ContactType: models.ContactTypeEmail,
		Code:        code,
		Purpose:     models.PurposeLogin,
	}
}

func otpBody(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP code is: %s\n\nThis code expires in %d minutes.", code, int(ttl.Minutes()))
}
