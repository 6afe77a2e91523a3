// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server runs the key-value transports of one process.
type Server interface {
	// RunServer serves until an interrupt or termination signal, then
	// shuts every listener down and returns.
	RunServer()

	// Shutdown stops the listeners without waiting for a signal.
	Shutdown()
}
