package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

// Defaults applied to fields left empty by every other source.
const (
	DefaultTokenDuration      = 24 * time.Hour
	DefaultPasswordCost       = 12
	DefaultOTPTTL             = 10 * time.Minute
	DefaultHTTPAddress        = "localhost:8080"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultCookieName         = "token"
	DefaultAllowedOrigin      = "http://localhost:3000"
	DefaultMailPort           = 587
	DefaultMailTimeout        = 10 * time.Second
	DefaultRateLimitBackend   = RateLimitBackendMemory
	DefaultRateLimitAttempts  = 5
	DefaultRateLimitWindow    = 15 * time.Minute
	DefaultOTPRetention       = 24 * time.Hour
	DefaultOTPCleanupInterval = time.Hour
	DefaultTokenIssuer        = "clean-auth"
	DefaultLogLevel           = "info"
	DefaultOAuthFailurePath   = "/login"
	DefaultOAuthSuccessTarget = "http://localhost:3000/"
)

// Rate limit backends accepted by RATE_LIMIT_BACKEND.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected sources. mergo.Merge only fills zero fields of
// the destination, so a source appended earlier takes precedence.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// withDotEnv loads variables from path into the process environment.
// Variables already set in the environment are not overridden and a
// missing file is not an error.
func (b *configBuilder) withDotEnv(path string) *configBuilder {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		b.err = errors.Join(b.err, fmt.Errorf("error loading %s: %w", path, err))
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(flags *StructuredConfig) *configBuilder {
	if flags == nil {
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			PasswordCost:  DefaultPasswordCost,
			OTPTTL:        DefaultOTPTTL,
			LogLevel:      DefaultLogLevel,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			CookieName:     DefaultCookieName,
			AllowedOrigins: []string{DefaultAllowedOrigin},
		},
		Mail: Mail{
			Port:    DefaultMailPort,
			Timeout: DefaultMailTimeout,
		},
		OAuth: OAuth{
			SuccessRedirect: DefaultOAuthSuccessTarget,
			FailureRedirect: DefaultAllowedOrigin + DefaultOAuthFailurePath,
		},
		RateLimit: RateLimit{
			Backend:  DefaultRateLimitBackend,
			Attempts: DefaultRateLimitAttempts,
			Window:   DefaultRateLimitWindow,
		},
		Workers: Workers{
			OTPCleanupInterval: DefaultOTPCleanupInterval,
			OTPRetention:       DefaultOTPRetention,
		},
	})

	return b
}
