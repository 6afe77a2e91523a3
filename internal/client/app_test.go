// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/internal/tui"
)

const vendorsJSON = `[{"id":"v1","name":"ACME Supplies"}]`

// scriptedUI runs one step per session and records what it was given.
type scriptedUI struct {
	t        *testing.T
	steps    []func(s tui.Session) (tui.Outcome, error)
	sessions []tui.Session
}

func (u *scriptedUI) Run(ctx context.Context, s tui.Session) (tui.Outcome, error) {
	u.t.Helper()
	require.Less(u.t, len(u.sessions), len(u.steps), "unexpected session")
	step := u.steps[len(u.sessions)]
	u.sessions = append(u.sessions, s)
	return step(s)
}

// sharedBackend hands the same memory store to every session and ignores
// Close, so data survives the reloads.
type sharedBackend struct {
	store.Store
	closed int
}

func (b *sharedBackend) Close() error {
	b.closed++
	return nil
}

func newTestApp(t *testing.T, ui UI, base *sharedBackend) *App {
	t.Helper()

	cfg := &config.ClientConfig{App: config.App{UnlockAttempts: 10}}
	app, err := NewApp(cfg, ui, logger.Nop())
	require.NoError(t, err)
	app.openStore = func(context.Context) (store.Backend, error) {
		return base, nil
	}
	return app
}

// encryptedStore returns a memory store holding vendorsJSON encrypted under
// password.
func encryptedStore(t *testing.T, password string) *sharedBackend {
	t.Helper()

	base := &sharedBackend{Store: store.NewMemoryStore()}
	s := service.NewSecureStorage(base)
	require.NoError(t, s.Set(context.Background(), "vendors", []byte(vendorsJSON)))
	require.NoError(t, s.MigrateToEncrypted(context.Background(), password))
	return base
}

func quit(tui.Session) (tui.Outcome, error) {
	return tui.OutcomeQuit, nil
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(nil, &scriptedUI{}, logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(&config.ClientConfig{}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestApp_Run_PlaintextStoreStartsUnlocked(t *testing.T) {
	base := &sharedBackend{Store: store.NewMemoryStore()}
	ui := &scriptedUI{t: t, steps: []func(tui.Session) (tui.Outcome, error){quit}}

	require.NoError(t, newTestApp(t, ui, base).Run(context.Background()))

	require.Len(t, ui.sessions, 1)
	assert.False(t, ui.sessions[0].Locked)
	assert.False(t, ui.sessions[0].Vault.IsEncryptionEnabled())
	assert.Equal(t, 1, base.closed)
}

func TestApp_Run_UnlockThenManualLockReloads(t *testing.T) {
	ctx := context.Background()
	base := encryptedStore(t, "pw")

	ui := &scriptedUI{t: t}
	ui.steps = []func(tui.Session) (tui.Outcome, error){
		func(s tui.Session) (tui.Outcome, error) {
			// Locked on start; sensitive values are not readable yet
			assert.True(t, s.Locked)
			require.NoError(t, s.Vault.Unlock(ctx, "pw"))

			got, err := s.Vault.Get(ctx, "vendors")
			require.NoError(t, err)
			assert.Equal(t, vendorsJSON, string(got))

			s.Vault.Lock()
			return tui.OutcomeLocked, nil
		},
		func(s tui.Session) (tui.Outcome, error) {
			// The lock cleared the key holder, so the password is asked again
			assert.True(t, s.Locked)
			return tui.OutcomeQuit, nil
		},
	}

	require.NoError(t, newTestApp(t, ui, base).Run(ctx))

	assert.Len(t, ui.sessions, 2)
	assert.Equal(t, 2, base.closed)
}

func TestApp_Run_ReloadRestoresFromKeyHolder(t *testing.T) {
	ctx := context.Background()
	base := encryptedStore(t, "pw")

	ui := &scriptedUI{t: t}
	ui.steps = []func(tui.Session) (tui.Outcome, error){
		func(s tui.Session) (tui.Outcome, error) {
			require.NoError(t, s.Vault.Unlock(ctx, "pw"))
			// The session ends without discarding the password.
			return tui.OutcomeLocked, nil
		},
		func(s tui.Session) (tui.Outcome, error) {
			assert.False(t, s.Locked)
			got, err := s.Vault.Get(ctx, "vendors")
			require.NoError(t, err)
			assert.Equal(t, vendorsJSON, string(got))
			return tui.OutcomeQuit, nil
		},
	}

	app := newTestApp(t, ui, base)
	require.NoError(t, app.Run(ctx))

	assert.Len(t, ui.sessions, 2)
	assert.False(t, app.keyHolder.Has())
}

func TestApp_Run_OpenStoreError(t *testing.T) {
	ui := &scriptedUI{t: t}
	app := newTestApp(t, ui, nil)
	app.openStore = func(context.Context) (store.Backend, error) {
		return nil, store.ErrUnavailable
	}

	err := app.Run(context.Background())

	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Empty(t, ui.sessions)
}

func TestApp_Run_UIErrorStops(t *testing.T) {
	base := &sharedBackend{Store: store.NewMemoryStore()}
	boom := errors.New("terminal gone")
	ui := &scriptedUI{t: t, steps: []func(tui.Session) (tui.Outcome, error){
		func(tui.Session) (tui.Outcome, error) { return tui.OutcomeLocked, boom },
	}}

	err := newTestApp(t, ui, base).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, ui.sessions, 1)
	assert.Equal(t, 1, base.closed)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("prefixed memory store", func(t *testing.T) {
		cfg := &config.ClientConfig{Storage: config.Storage{Backend: config.BackendMemory, Prefix: "pc_"}}

		s, err := OpenStore(ctx, cfg, logger.Nop())
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Set(ctx, "checks", []byte("[]")))
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"checks"}, keys)
	})

	t.Run("remote without address", func(t *testing.T) {
		cfg := &config.ClientConfig{Storage: config.Storage{Backend: config.BackendRemote}}

		_, err := OpenStore(ctx, cfg, logger.Nop())

		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.ClientConfig{Storage: config.Storage{Backend: "tape"}}

		_, err := OpenStore(ctx, cfg, logger.Nop())

		assert.ErrorIs(t, err, store.ErrUnsupportedBackend)
	})
}
