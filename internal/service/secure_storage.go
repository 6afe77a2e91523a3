// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/crypto"
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/internal/store"
)

var (
	_ store.Backend           = (*SecureStorage)(nil)
	_ store.EncryptionManager = (*SecureStorage)(nil)
)

// SecureStorage wraps a base [store.Store] and transparently encrypts the
// values of a configured set of sensitive keys under a password held in
// memory. It owns the plaintext/encrypted migration protocol and password
// rotation.
//
// Reads sniff every value: envelopes are decrypted, anything else is returned
// as is, so a store may legitimately mix encrypted and plaintext values. Writes
// encrypt only while encryption is enabled and a password is held.
//
// SecureStorage is safe for concurrent use. It does not serialize writes to a
// single key; callers doing read-modify-write on one key must do that
// themselves.
type SecureStorage struct {
	base      store.Store
	engine    crypto.Engine
	keyHolder *crypto.SessionKeyHolder
	bus       *events.Bus
	limiter   *rate.Limiter
	logger    *logger.Logger

	sensitive   sensitiveSet
	autoMigrate bool

	// bulkMu serializes migrations and rotations against each other.
	bulkMu sync.Mutex

	mu       sync.RWMutex
	password string
	enabled  bool
}

// Option customises a [SecureStorage].
type Option func(*SecureStorage)

// WithSensitiveKeys replaces the default sensitive key set.
func WithSensitiveKeys(keys ...string) Option {
	return func(s *SecureStorage) {
		s.sensitive = newSensitiveSet(keys)
	}
}

// WithAutoMigrate controls whether Initialize encrypts leftover plaintext
// when the store says encryption is enabled. It is on by default.
func WithAutoMigrate(enabled bool) Option {
	return func(s *SecureStorage) {
		s.autoMigrate = enabled
	}
}

// WithEngine replaces the crypto engine.
func WithEngine(engine crypto.Engine) Option {
	return func(s *SecureStorage) {
		s.engine = engine
	}
}

// WithKeyHolder mirrors the held password into holder so that it survives a
// rebuild of the storage (see Restore).
func WithKeyHolder(holder *crypto.SessionKeyHolder) Option {
	return func(s *SecureStorage) {
		s.keyHolder = holder
	}
}

// WithEventBus publishes password and encryption changes on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(s *SecureStorage) {
		s.bus = bus
	}
}

// WithUnlockLimit allows attempts immediate Unlock calls, then one more per
// interval. A non-positive attempts disables throttling.
func WithUnlockLimit(attempts int, interval time.Duration) Option {
	return func(s *SecureStorage) {
		if attempts <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(interval), attempts)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *SecureStorage) {
		s.logger = log
	}
}

// ConfigOptions translates the application config into options.
func ConfigOptions(cfg config.App) []Option {
	opts := []Option{
		WithAutoMigrate(!cfg.DisableAutoMigrate),
		WithUnlockLimit(cfg.UnlockAttempts, cfg.UnlockInterval),
	}
	if len(cfg.SensitiveKeys) > 0 {
		opts = append(opts, WithSensitiveKeys(cfg.SensitiveKeys...))
	}
	return opts
}

// NewSecureStorage wraps base. Without options it uses the default sensitive
// keys, the version "1.0" engine, auto-migration and a private key holder.
func NewSecureStorage(base store.Store, opts ...Option) *SecureStorage {
	s := &SecureStorage{
		base:        base,
		engine:      crypto.NewEngine(),
		keyHolder:   crypto.NewSessionKeyHolder(),
		logger:      logger.Nop(),
		sensitive:   newSensitiveSet(config.DefaultSensitiveKeys),
		autoMigrate: true,
		limiter:     rate.NewLimiter(rate.Every(config.DefaultUnlockInterval), config.DefaultUnlockAttempts),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize makes password the held password and loads the enabled flag from
// the store. When encryption is enabled, auto-migration is on and plaintext
// sensitive values remain, they are encrypted before Initialize returns.
func (s *SecureStorage) Initialize(ctx context.Context, password string) error {
	const op = "initialize"
	if password == "" {
		return store.NewEncryptionError(op, "", store.ErrPasswordRequired, nil)
	}

	enabled, err := s.readFlag(ctx, KeyEncryptionEnabled)
	if err != nil {
		s.logger.Err(err).Str("func", "SecureStorage.Initialize").Msg("failed to read encryption flag")
		return storageError(op, KeyEncryptionEnabled, err)
	}

	s.mu.Lock()
	s.password = password
	s.enabled = enabled
	s.mu.Unlock()
	s.keyHolder.Store(password)

	if enabled && s.autoMigrate {
		needs, err := s.NeedsMigration(ctx)
		if err != nil {
			return err
		}
		if needs {
			s.logger.Info().Str("func", "SecureStorage.Initialize").Msg("plaintext sensitive values found, migrating")
			if err = s.MigrateToEncrypted(ctx, password); err != nil {
				return err
			}
		}
	}

	s.publish(events.Event{Kind: events.PasswordSet})
	return nil
}

// IsEncryptionEnabled reports the in-memory mirror of KeyEncryptionEnabled.
func (s *SecureStorage) IsEncryptionEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// HasPassword reports whether a password is held.
func (s *SecureStorage) HasPassword() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password != ""
}

// Lock discards the held password here and in the key holder.
func (s *SecureStorage) Lock() {
	s.mu.Lock()
	s.password = ""
	s.mu.Unlock()
	s.keyHolder.Clear()

	s.logger.Info().Str("func", "SecureStorage.Lock").Msg("password discarded")
	s.publish(events.Event{Kind: events.PasswordCleared})
}

// Unlock checks password against the stored verification envelope and, when
// it matches, initializes with it. Attempts are rate limited; once the budget
// is spent Unlock fails with store.ErrTooManyAttempts without looking at the
// password.
func (s *SecureStorage) Unlock(ctx context.Context, password string) error {
	const op = "unlock"
	if password == "" {
		return store.NewEncryptionError(op, "", store.ErrPasswordRequired, nil)
	}
	if !s.limiter.Allow() {
		s.logger.Warn().Str("func", "SecureStorage.Unlock").Msg("unlock throttled")
		return fmt.Errorf("%s: %w", op, store.ErrTooManyAttempts)
	}

	ok, err := s.VerifyPassword(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn().Str("func", "SecureStorage.Unlock").Msg("wrong password")
		return store.NewEncryptionError(op, "", store.ErrWrongPassword, nil)
	}

	return s.Initialize(ctx, password)
}

// Restore re-initializes from the key holder after the storage was rebuilt.
// It reports false when the holder is empty.
func (s *SecureStorage) Restore(ctx context.Context) (bool, error) {
	password, ok := s.keyHolder.Load()
	if !ok {
		return false, nil
	}
	if err := s.Initialize(ctx, password); err != nil {
		return false, err
	}
	return true, nil
}

// Load refreshes the enabled flag from the store without a password. It
// reports whether sensitive values are locked, i.e. encryption is enabled
// and no password is held.
func (s *SecureStorage) Load(ctx context.Context) (locked bool, err error) {
	enabled, err := s.readFlag(ctx, KeyEncryptionEnabled)
	if err != nil {
		return false, storageError("load", KeyEncryptionEnabled, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	return enabled && s.password == "", nil
}

// Close closes the base store when it owns a resource.
func (s *SecureStorage) Close() error {
	if c, ok := s.base.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *SecureStorage) heldPassword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password
}

func (s *SecureStorage) state() (password string, enabled bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password, s.enabled
}

func (s *SecureStorage) setState(password string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
	s.enabled = enabled
}

func (s *SecureStorage) publish(e events.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// readFlag reads a "true"/"false" metadata key; absent means false.
func (s *SecureStorage) readFlag(ctx context.Context, key string) (bool, error) {
	raw, err := s.base.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(raw) == flagTrue, nil
}
