// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client, the maintenance CLI and the remote store server. It is populated by
// merging values from a dotenv file, environment variables, command-line flags
// and an optional JSON file, then filled with defaults and validated.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
//   - validate : go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds the secure storage and session settings.
	App App `envPrefix:"APP_"`

	// Storage selects and addresses the base storage backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts for the remote store server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote store client settings used when
	// Storage.Backend is "remote".
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flag: -c / --config
	JSONFilePath string `env:"CONFIG"`

	// EnvFile is the optional path to a dotenv file loaded before the
	// environment is parsed. Variables already set in the process win.
	// Env: ENV_FILE, flag: --env-file
	EnvFile string `env:"ENV_FILE"`

	// LogFile is where the client writes its log; the terminal UI owns
	// stdout. Empty means the default client log path.
	// Env: LOG_FILE, flag: --log-file
	LogFile string `env:"LOG_FILE"`
}

// App holds the settings of the secure storage layer and the session guard.
type App struct {
	// SensitiveKeys lists the storage keys whose values are encrypted.
	// Env: APP_SENSITIVE_KEYS (comma separated)
	SensitiveKeys []string `env:"SENSITIVE_KEYS" envSeparator:"," validate:"dive,required"`

	// DisableAutoMigrate turns off encryption of legacy plaintext values
	// on read.
	// Env: APP_DISABLE_AUTO_MIGRATE
	DisableAutoMigrate bool `env:"DISABLE_AUTO_MIGRATE"`

	// InactivityTimeout is the idle time after which the warning starts.
	// Env: APP_INACTIVITY_TIMEOUT
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT" validate:"gte=0"`

	// WarningDuration is how long the warning lasts before the lock.
	// Env: APP_WARNING_DURATION
	WarningDuration time.Duration `env:"WARNING_DURATION" validate:"gte=0"`

	// UnlockAttempts is the burst of password attempts allowed before
	// throttling kicks in.
	// Env: APP_UNLOCK_ATTEMPTS
	UnlockAttempts int `env:"UNLOCK_ATTEMPTS" validate:"gte=0"`

	// UnlockInterval is the time it takes to regain one attempt.
	// Env: APP_UNLOCK_INTERVAL
	UnlockInterval time.Duration `env:"UNLOCK_INTERVAL" validate:"gte=0"`

	// HashKey is the HMAC key used for request integrity checking between
	// the remote store client and server (HashSHA256 header).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
}

// Storage selects the base key-value backend.
type Storage struct {
	// Backend is one of memory, file, sqlite, postgres, bolt, remote.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND" validate:"omitempty,oneof=memory file sqlite postgres bolt remote"`

	// DSN addresses the backend: a file path for file, sqlite and bolt, a
	// connection string for postgres. Unused for memory and remote.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// Prefix namespaces every key written by the client.
	// Env: STORAGE_PREFIX
	Prefix string `env:"PREFIX"`
}

// Server holds network and timeout settings for the remote store server.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"omitempty,hostname_port"`

	// GRPCAddress is the TCP address of the gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS" validate:"omitempty,hostname_port"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`

	// AllowedOrigins configures CORS. Empty allows none.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Adapter holds the remote store client settings.
type Adapter struct {
	// HTTPAddress is the base address of the remote store server, either
	// "host:port" or a full URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`
}

// Backend names accepted by Storage.Backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendBolt     = "bolt"
	BackendRemote   = "remote"
)

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources in the following priority order (later sources win for non-zero
// fields):
//  1. Environment variables (after the optional dotenv file is loaded)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults fill whatever is still zero afterwards.
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	flagCfg := flags.Config()

	return newConfigBuilder().
		withDotEnv(flagCfg.EnvFile).
		withEnv().
		withConfig(flagCfg).
		withJSON().
		build()
}
