// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, optionally seeded from a dotenv file
//  2. Command-line flags
//  3. JSON config file
//
// Defaults fill the remaining zero fields and the result is validated with
// go-playground/validator. The entry points are [GetClientConfig] for the
// terminal client and maintenance CLI and [GetServerConfig] for the remote
// store server.
package config
