// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/Danford/PrintChecks/models"
)

// Page names known to [RootModel].
const (
	pageUnlock = "unlock"
	pageBrowse = "browse"
)

// NavigateTo asks [RootModel] to switch to Page and run its Init.
type NavigateTo struct {
	Page string
}

type unlockResultMsg struct {
	err error
}

type keysLoadedMsg struct {
	keys  []string
	stats models.StorageStats
	err   error
}

type valueLoadedMsg struct {
	key   string
	value []byte
	err   error
}

type warningMsg struct {
	deadline time.Time
}

type lockedMsg struct{}

type tickMsg time.Time

type clearStatusMsg struct{}
