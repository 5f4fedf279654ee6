// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
)

// envAliases maps short deployment variable names onto the structured ones.
// An alias is only consulted when its structured variable is unset.
var envAliases = map[string]string{
	"JWT_SECRET":           "APP_TOKEN_SIGN_KEY",
	"GOOGLE_CLIENT_ID":     "OAUTH_GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET": "OAUTH_GOOGLE_CLIENT_SECRET",
	"GOOGLE_CALLBACK_URL":  "OAUTH_GOOGLE_REDIRECT_URL",
	"EMAIL_USER":           "MAIL_USERNAME",
	"EMAIL_PASS":           "MAIL_PASSWORD",
}

const defaultPostgresPort = "5432"

// parseEnv fills cfg from the process environment.
func parseEnv(cfg any) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

func parseEnvFrom(cfg any, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: resolveAliases(environ)}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

// resolveAliases returns a copy of environ with aliases, PORT and the DB_*
// connection parts folded into the structured names.
func resolveAliases(environ map[string]string) map[string]string {
	resolved := make(map[string]string, len(environ)+len(envAliases))
	for k, v := range environ {
		resolved[k] = v
	}

	setIfUnset := func(key, value string) {
		if _, ok := resolved[key]; !ok && value != "" {
			resolved[key] = value
		}
	}

	for alias, key := range envAliases {
		setIfUnset(key, environ[alias])
	}
	if environ["EMAIL_USER"] != "" {
		setIfUnset("MAIL_FROM", environ["EMAIL_USER"])
	}
	if port := environ["PORT"]; port != "" {
		setIfUnset("SERVER_ADDRESS", ":"+port)
	}
	setIfUnset("STORAGE_DB_DATABASE_URI", postgresDSN(environ))

	return resolved
}

// postgresDSN builds a connection URI from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD and DB_NAME. It returns "" when DB_HOST is unset.
func postgresDSN(environ map[string]string) string {
	host := environ["DB_HOST"]
	if host == "" {
		return ""
	}
	port := environ["DB_PORT"]
	if port == "" {
		port = defaultPostgresPort
	}

	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + environ["DB_NAME"],
	}
	if user := environ["DB_USER"]; user != "" {
		dsn.User = url.UserPassword(user, environ["DB_PASSWORD"])
	}
	return dsn.String()
}
