// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Danford/PrintChecks/models"
)

func TestKVValidator_Key(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "plain", key: "printchecks_checks"},
		{name: "with slash and space", key: "a/b c"},
		{name: "unicode", key: "chèques"},
		{name: "empty", key: "", wantErr: ErrInvalidKey},
		{name: "control char", key: "a\x00b", wantErr: ErrInvalidKey},
		{name: "newline", key: "a\nb", wantErr: ErrInvalidKey},
		{name: "too long", key: strings.Repeat("k", MaxKeyLength+1), wantErr: ErrInvalidKey},
		{name: "max length", key: strings.Repeat("k", MaxKeyLength)},
		{name: "reserved", key: "batch", wantErr: ErrReservedKey},
	}

	v := NewKVValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.key)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKVValidator_BatchGet(t *testing.T) {
	many := make([]string, MaxBatchSize+1)
	for i := range many {
		many[i] = fmt.Sprintf("k%d", i)
	}

	tests := []struct {
		name    string
		req     any
		wantErr error
	}{
		{name: "ok", req: models.BatchGetRequest{Keys: []string{"checks", "vendors"}}},
		{name: "pointer", req: &models.BatchGetRequest{Keys: []string{"checks"}}},
		{name: "empty", req: models.BatchGetRequest{}, wantErr: ErrEmptyKeys},
		{name: "too many", req: models.BatchGetRequest{Keys: many}, wantErr: ErrTooManyKeys},
		{name: "bad key", req: models.BatchGetRequest{Keys: []string{"ok", ""}}, wantErr: ErrInvalidKey},
	}

	v := NewKVValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKVValidator_BatchEntries(t *testing.T) {
	v := NewKVValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.BatchEntries{Entries: map[string][]byte{"checks": []byte("[]")}}))
	assert.NoError(t, v.Validate(ctx, &models.BatchEntries{Entries: map[string][]byte{"checks": nil}}))
	assert.ErrorIs(t, v.Validate(ctx, models.BatchEntries{}), ErrEmptyEntries)
	assert.ErrorIs(t, v.Validate(ctx, models.BatchEntries{Entries: map[string][]byte{"batch": nil}}), ErrReservedKey)
}

func TestKVValidator_Fields(t *testing.T) {
	v := NewKVValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.BatchGetRequest{Keys: []string{"a"}}, FieldKeys))
	assert.ErrorIs(t, v.Validate(ctx, models.BatchGetRequest{Keys: []string{"a"}}, "Nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.BatchEntries{Entries: map[string][]byte{"a": nil}}, FieldKeys), ErrUnknownField)
}

func TestKVValidator_UnsupportedType(t *testing.T) {
	err := NewKVValidator().Validate(context.Background(), 42)

	assert.ErrorIs(t, err, ErrUnsupportedType)
}
