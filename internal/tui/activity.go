// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danford/PrintChecks/internal/session"
)

// activitySource maps terminal input onto the activity kinds the session
// guard counts. Mouse motion and releases are not activity.
func activitySource(msg tea.Msg) (session.ActivitySource, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return session.KeyDown, true
	case tea.MouseMsg:
		event := tea.MouseEvent(msg)
		if event.IsWheel() {
			return session.Scroll, true
		}
		if event.Action == tea.MouseActionPress {
			return session.PointerDown, true
		}
	}
	return 0, false
}
