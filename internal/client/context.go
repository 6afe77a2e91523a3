// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/internal/session"
	"github.com/Danford/PrintChecks/internal/store"
)

// Context is everything built for one unlock-to-lock cycle. It is passed to
// consumers explicitly and rebuilt from durable storage after every lock.
type Context struct {
	Base    store.Backend
	Storage *service.SecureStorage
	Bus     *events.Bus
	Guard   *session.Guard
}

// Close stops the guard and closes the storage.
func (c *Context) Close() error {
	c.Guard.Stop()
	return c.Storage.Close()
}
