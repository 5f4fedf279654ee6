// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks authentication requests before they reach the
// service layer.
//
// A Validator dispatches on the concrete request type and can be scoped to a
// subset of fields:
//
//	err := v.Validate(ctx, req, validators.FieldEmail)
//
// Without field names every field relevant to the request is checked in a
// fixed order and the first failure is returned.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
