// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal interface of the client: an unlock screen, a
// browser for the stored values and the inactivity warning overlay.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/models"
)

// Outcome tells the caller why a session of the UI ended.
type Outcome int

const (
	// OutcomeQuit means the user left the program.
	OutcomeQuit Outcome = iota
	// OutcomeLocked means the vault was locked and the application must
	// be rebuilt before the next session.
	OutcomeLocked
)

// Session is what one run of the UI works with.
type Session struct {
	Vault Vault
	Guard ActivityGuard
	// Bus delivers the guard's warning and lock signals. May be nil.
	Bus *events.Bus
	// Locked starts the UI on the unlock screen.
	Locked bool
}

// TUI runs Bubble Tea programs over a [Session].
type TUI struct {
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New creates a TUI. buildInfo is shown on the browse screen.
func New(buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{buildInfo: buildInfo, logger: logger}
}

// Run shows the UI until the user quits or the vault gets locked.
func (t *TUI) Run(ctx context.Context, s Session) (Outcome, error) {
	root := newRootModel(ctx, s, t.buildInfo)
	p := tea.NewProgram(root,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if s.Bus != nil {
		// Send from a goroutine: the guard may publish while the program
		// itself is inside Update (e.g. locking on regained focus).
		unsubscribe := s.Bus.Subscribe(func(e events.Event) {
			switch e.Kind {
			case events.SessionWarning:
				go p.Send(warningMsg{deadline: e.Deadline})
			case events.SessionLocked:
				go p.Send(lockedMsg{})
			}
		})
		defer unsubscribe()
	}

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return OutcomeQuit, ctx.Err()
		}
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("ui program failed")
		return OutcomeQuit, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return OutcomeQuit, tea.ErrProgramKilled
	}
	if result.locked {
		t.logger.Info().Str("func", "*TUI.Run").Msg("session ended by lock")
		return OutcomeLocked, nil
	}
	return OutcomeQuit, nil
}
