// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the input of the remote key-value API before it
// reaches a store.
//
// Validators are injected into handlers; transport code decodes, a Validator
// checks, and only then is the store called.
package validators

import "context"

// Validator validates an arbitrary input value. fields optionally restricts
// a struct to the named fields.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
