// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/Danford/PrintChecks/internal/session"
	"github.com/Danford/PrintChecks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/tui_mock.go -package=mock

// Vault is the secure storage the UI unlocks and browses.
type Vault interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Stats(ctx context.Context) (models.StorageStats, error)
	Unlock(ctx context.Context, password string) error
	// Lock discards the held password.
	Lock()
	IsEncryptionEnabled() bool
}

// ActivityGuard is told about user input so that it can lock the vault
// after a period of inactivity.
type ActivityGuard interface {
	RecordActivity(source session.ActivitySource)
	KeepAlive()
	VisibilityChanged(visible bool)
}
