// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHTTPAddress is returned when no HTTP address is configured. The
	// auth endpoints exist only over HTTP; gRPC serves health alone.
	errNoHTTPAddress = errors.New("http address is required")
	errNoLimiter     = errors.New("rate limiter is required")
)
