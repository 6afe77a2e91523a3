// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/Danford/PrintChecks/internal/tui"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI runs one session of the user interface.
type UI interface {
	Run(ctx context.Context, s tui.Session) (tui.Outcome, error)
}
