// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Danford/PrintChecks/models"
)

const (
	// MaxKeyLength bounds a key in characters.
	MaxKeyLength = 1024
	// MaxBatchSize bounds the keys or entries of one batch request.
	MaxBatchSize = 10000

	FieldKeys    = "Keys"
	FieldEntries = "Entries"

	tagStoreKey = "storekey"
)

// reservedKeys collide with the fixed batch routes under /api/kv.
var reservedKeys = map[string]bool{"batch": true}

// KVValidator validates keys and batch bodies of the key-value API.
type KVValidator struct {
	validate *validator.Validate
}

// NewKVValidator returns a Validator for plain string keys,
// models.BatchGetRequest and models.BatchEntries.
func NewKVValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registered on a fresh instance, the error can only be a bad tag name.
	_ = v.RegisterValidation(tagStoreKey, func(fl validator.FieldLevel) bool {
		return isStoreKey(fl.Field().String())
	})
	return &KVValidator{validate: v}
}

func (v *KVValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return v.validateKey(ctx, value)

	case models.BatchGetRequest:
		return v.validateBatchGet(ctx, value, fields...)
	case *models.BatchGetRequest:
		return v.validateBatchGet(ctx, *value, fields...)

	case models.BatchEntries:
		return v.validateBatchEntries(ctx, value, fields...)
	case *models.BatchEntries:
		return v.validateBatchEntries(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *KVValidator) validateKey(ctx context.Context, key string) error {
	if reservedKeys[key] {
		return fmt.Errorf("%w: %q", ErrReservedKey, key)
	}
	if err := v.validate.VarCtx(ctx, key, fmt.Sprintf("required,max=%d,%s", MaxKeyLength, tagStoreKey)); err != nil {
		return ErrInvalidKey
	}
	return nil
}

func (v *KVValidator) validateBatchGet(ctx context.Context, req models.BatchGetRequest, fields ...string) error {
	if err := checkFields(fields, FieldKeys); err != nil {
		return err
	}

	switch {
	case len(req.Keys) == 0:
		return ErrEmptyKeys
	case len(req.Keys) > MaxBatchSize:
		return ErrTooManyKeys
	}
	for _, key := range req.Keys {
		if err := v.validateKey(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (v *KVValidator) validateBatchEntries(ctx context.Context, req models.BatchEntries, fields ...string) error {
	if err := checkFields(fields, FieldEntries); err != nil {
		return err
	}

	switch {
	case len(req.Entries) == 0:
		return ErrEmptyEntries
	case len(req.Entries) > MaxBatchSize:
		return ErrTooManyEntries
	}
	for key := range req.Entries {
		if err := v.validateKey(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func checkFields(fields []string, known ...string) error {
	for _, f := range fields {
		found := false
		for _, k := range known {
			if f == k {
				found = true
				break
			}
		}
		if !found {
			return errors.Join(ErrUnknownField, fmt.Errorf("field %q", f))
		}
	}
	return nil
}

// isStoreKey rejects control characters, which no backend stores portably.
func isStoreKey(key string) bool {
	for _, r := range key {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return false
		}
	}
	return true
}
