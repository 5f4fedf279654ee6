// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 || cfg.App.OTPTTL <= 0 {
		return fmt.Errorf("%w: token duration and otp ttl must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordCost < bcrypt.MinCost || cfg.App.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordCost)
	}

	for _, proxy := range cfg.Server.TrustedProxies {
		if _, err := ParseTrustedProxy(proxy); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
		}
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database dsn is required", ErrInvalidStorageConfigs)
	}

	switch cfg.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if cfg.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: redis backend requires STORAGE_REDIS_ADDRESS", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Backend)
	}
	if cfg.RateLimit.Attempts <= 0 || cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: attempts and window must be positive", ErrInvalidRateLimitConfigs)
	}

	google := cfg.OAuth.Google
	if google.ClientID != "" && (google.ClientSecret == "" || google.RedirectURL == "") {
		return fmt.Errorf("%w: google client secret and redirect url are required", ErrInvalidOAuthConfigs)
	}

	if cfg.Mail.Host != "" && cfg.Mail.From == "" {
		return fmt.Errorf("%w: sender address is required", ErrInvalidMailConfigs)
	}
	if cfg.Mail.Host == "" && cfg.Server.CookieSecure {
		return fmt.Errorf("%w: an smtp host is required when secure cookies are on", ErrInvalidMailConfigs)
	}

	if cfg.Workers.OTPCleanupInterval < 0 || cfg.Workers.OTPRetention < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ParseTrustedProxy parses a SERVER_TRUSTED_PROXIES entry. A bare address is
// treated as a single-host range.
func ParseTrustedProxy(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", s, err)
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", s, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
