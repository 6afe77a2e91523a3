// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements vaultctl, the maintenance command line for the
// encrypted storage: turning encryption on and off, rotating the password,
// checking a password, reporting statistics and generating passwords.
package cli
