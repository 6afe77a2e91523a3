// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// DefaultSensitiveKeys are the storage keys holding financial data.
var DefaultSensitiveKeys = []string{
	"checkList",
	"checks",
	"receipts",
	"payments",
	"vendors",
	"bankAccounts",
	"templates",
	"customization",
	"presets",
	"settings",
}

const (
	DefaultInactivityTimeout = 5 * time.Minute
	DefaultWarningDuration   = 60 * time.Second
	DefaultUnlockAttempts    = 5
	DefaultUnlockInterval    = 30 * time.Second
	DefaultKeyPrefix         = "printchecks_"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SensitiveKeys:     append([]string(nil), DefaultSensitiveKeys...),
			InactivityTimeout: DefaultInactivityTimeout,
			WarningDuration:   DefaultWarningDuration,
			UnlockAttempts:    DefaultUnlockAttempts,
			UnlockInterval:    DefaultUnlockInterval,
		},
		Storage: Storage{
			Backend: BackendFile,
			Prefix:  DefaultKeyPrefix,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 10 * time.Second,
		},
	}
}

// defaultDSN picks a file name next to the working directory for the file
// based backends when none is configured.
func defaultDSN(s Storage) string {
	if s.DSN != "" {
		return s.DSN
	}

	switch s.Backend {
	case BackendFile:
		return "printchecks.json"
	case BackendSQLite:
		return "printchecks.sqlite"
	case BackendBolt:
		return "printchecks.db"
	default:
		return ""
	}
}
