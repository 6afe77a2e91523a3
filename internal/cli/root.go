// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danford/PrintChecks/internal/client"
	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/internal/store"
)

// Vault is a storage opened for maintenance.
type Vault struct {
	// Raw is the base store; values are read as stored.
	Raw store.Store
	// Store is the encrypting view of Raw.
	Store store.Backend
}

// Close closes the storage.
func (v *Vault) Close() error {
	return v.Store.Close()
}

// VaultOpener opens the storage selected by cfg.
type VaultOpener func(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*Vault, error)

// OpenVault opens the configured base store and wraps it in the secure
// storage layer with its encryption state loaded.
func OpenVault(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*Vault, error) {
	base, err := client.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := append(service.ConfigOptions(cfg.App), service.WithLogger(log))
	secure := service.NewSecureStorage(base, opts...)
	if _, err = secure.Load(ctx); err != nil {
		_ = secure.Close()
		return nil, err
	}

	return &Vault{Raw: base, Store: secure}, nil
}

// App holds what the commands share.
type App struct {
	flags  *config.Flags
	prompt PasswordPrompt
	open   VaultOpener
	quiet  bool
	logger *logger.Logger
}

// Option customises the command tree.
type Option func(*App)

// WithPrompt replaces the terminal password prompt.
func WithPrompt(p PasswordPrompt) Option {
	return func(a *App) {
		a.prompt = p
	}
}

// WithVaultOpener replaces [OpenVault].
func WithVaultOpener(open VaultOpener) Option {
	return func(a *App) {
		a.open = open
	}
}

// WithLogger sets the logger. By default commands log to the client log
// file.
func WithLogger(log *logger.Logger) Option {
	return func(a *App) {
		a.logger = log
	}
}

// NewRootCommand builds the vaultctl command tree. The configuration flags
// shared with the client are registered as persistent flags.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &App{
		prompt: TerminalPrompt(),
		open:   OpenVault,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "Manage the encryption of PrintChecks storage",
		Long: `Maintains the PrintChecks storage outside of the interactive client.

Sensitive values (checks, vendors, bank accounts and the like) can be
encrypted under a password, decrypted back to plain text, or re-encrypted
under a new password. The storage backend is selected with the same flags,
environment variables and config files the client uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.flags = config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "do not show progress spinners")

	root.AddCommand(
		a.enableCmd(),
		a.disableCmd(),
		a.rotateCmd(),
		a.verifyCmd(),
		a.statsCmd(),
		a.genpassCmd(),
	)

	return root
}

// openManager loads the configuration, opens the vault and checks that it
// supports encryption management.
func (a *App) openManager(ctx context.Context) (*Vault, store.EncryptionManager, error) {
	cfg, err := config.GetClientConfig(a.flags)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if a.logger == nil {
		a.logger = logger.NewClientLogger("vaultctl", cfg.LogFile)
	}

	v, err := a.open(ctx, cfg, a.logger)
	if err != nil {
		a.logger.Err(err).Str("func", "*App.openManager").Msg("failed to open storage")
		return nil, nil, err
	}

	m, ok := store.AsEncryptionManager(v.Store)
	if !ok {
		_ = v.Close()
		return nil, nil, ErrNotSupported
	}
	return v, m, nil
}
