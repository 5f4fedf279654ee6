// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoTransports means neither the HTTP nor the gRPC listener was
	// configured.
	errNoTransports = errors.New("no transports configured")
	errBind         = errors.New("cannot bind address")
)
