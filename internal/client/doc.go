// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It opens the configured base store, wraps it in the secure storage layer,
// arms the inactivity guard and runs the terminal UI. A lock tears all of
// that down and builds it again from durable storage; only the session key
// holder lives for the whole process.
package client
