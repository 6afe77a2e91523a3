// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration file.
type StructuredJSONConfig struct {
	App struct {
		SensitiveKeys      []string `json:"sensitive_keys"`
		DisableAutoMigrate bool     `json:"disable_auto_migrate"`
		InactivityTimeout  Duration `json:"inactivity_timeout"`
		WarningDuration    Duration `json:"warning_duration"`
		UnlockAttempts     int      `json:"unlock_attempts"`
		UnlockInterval     Duration `json:"unlock_interval"`
		HashKey            string   `json:"hash_key"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		DSN     string `json:"dsn"`
		Prefix  string `json:"prefix"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	LogFile string `json:"log_file"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SensitiveKeys:      jsonCfg.App.SensitiveKeys,
			DisableAutoMigrate: jsonCfg.App.DisableAutoMigrate,
			InactivityTimeout:  time.Duration(jsonCfg.App.InactivityTimeout),
			WarningDuration:    time.Duration(jsonCfg.App.WarningDuration),
			UnlockAttempts:     jsonCfg.App.UnlockAttempts,
			UnlockInterval:     time.Duration(jsonCfg.App.UnlockInterval),
			HashKey:            jsonCfg.App.HashKey,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DSN:     jsonCfg.Storage.DSN,
			Prefix:  jsonCfg.Storage.Prefix,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		LogFile: jsonCfg.LogFile,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
