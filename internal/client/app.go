// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/crypto"
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/internal/session"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/tui"
)

type storeOpener func(ctx context.Context) (store.Backend, error)

// App is the client application. It owns the process-lifetime session key
// holder and rebuilds a [Context] around it for every session.
type App struct {
	cfg       *config.ClientConfig
	ui        UI
	openStore storeOpener
	keyHolder *crypto.SessionKeyHolder
	logger    *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp creates the client application over the backend selected by cfg.
func NewApp(cfg *config.ClientConfig, ui UI, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is required")
	}
	if ui == nil {
		return nil, fmt.Errorf("user interface is required")
	}

	return &App{
		cfg: cfg,
		ui:  ui,
		openStore: func(ctx context.Context) (store.Backend, error) {
			return OpenStore(ctx, cfg, log)
		},
		keyHolder: crypto.NewSessionKeyHolder(),
		logger:    log,
	}, nil
}

// Run loops over sessions: build the context, restore the password from the
// key holder or ask for it, run the UI and, when the session ends with a
// lock, start over from durable storage.
func (a *App) Run(ctx context.Context) error {
	defer a.keyHolder.Clear()

	for {
		appCtx, err := a.buildContext(ctx)
		if err != nil {
			return err
		}

		outcome, err := a.runSession(ctx, appCtx)
		if closeErr := appCtx.Close(); closeErr != nil {
			a.logger.Err(closeErr).Str("func", "*App.Run").Msg("failed to close storage")
		}
		if err != nil {
			return err
		}
		if outcome != tui.OutcomeLocked {
			a.logger.Info().Str("func", "*App.Run").Msg("client stopped")
			return nil
		}

		a.logger.Info().Str("func", "*App.Run").Msg("session locked, reloading")
	}
}

// buildContext opens the base store and wires the secure storage, the event
// bus and the guard around it.
func (a *App) buildContext(ctx context.Context) (*Context, error) {
	base, err := a.openStore(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "*App.buildContext").Msg("failed to open storage")
		return nil, err
	}

	bus := events.NewBus()
	opts := append(service.ConfigOptions(a.cfg.App),
		service.WithKeyHolder(a.keyHolder),
		service.WithEventBus(bus),
		service.WithLogger(a.logger.Component("secure_storage")),
	)
	storage := service.NewSecureStorage(base, opts...)

	guardOpts := append(session.ConfigOptions(a.cfg.App),
		session.WithLogger(a.logger.Component("session_guard")),
	)
	guard := session.NewGuard(storage, bus, guardOpts...)

	return &Context{
		Base:    base,
		Storage: storage,
		Bus:     bus,
		Guard:   guard,
	}, nil
}

func (a *App) runSession(ctx context.Context, c *Context) (tui.Outcome, error) {
	restored, err := c.Storage.Restore(ctx)
	if err != nil {
		// A mirror that no longer initializes is dropped; the user is
		// asked for the password instead.
		a.logger.Warn().Err(err).Str("func", "*App.runSession").Msg("failed to restore session")
		c.Storage.Lock()
	}

	locked, err := c.Storage.Load(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "*App.runSession").Msg("failed to load storage state")
		return tui.OutcomeQuit, err
	}

	a.logger.Debug().Str("func", "*App.runSession").
		Bool("restored", restored).
		Bool("locked", locked).
		Bool("encryption_enabled", c.Storage.IsEncryptionEnabled()).
		Msg("session starting")

	c.Guard.Start()

	return a.ui.Run(ctx, tui.Session{
		Vault:  c.Storage,
		Guard:  c.Guard,
		Bus:    c.Bus,
		Locked: locked,
	})
}
