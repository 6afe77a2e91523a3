// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Danford/PrintChecks/internal/session"
)

func TestActivitySource(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.Msg
		wantSource session.ActivitySource
		wantOK     bool
	}{
		{name: "key", msg: keyRunes("a"), wantSource: session.KeyDown, wantOK: true},
		{name: "special key", msg: keyEnter, wantSource: session.KeyDown, wantOK: true},
		{
			name:       "mouse press",
			msg:        tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			wantSource: session.PointerDown, wantOK: true,
		},
		{
			name:       "wheel",
			msg:        tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown},
			wantSource: session.Scroll, wantOK: true,
		},
		{name: "mouse motion", msg: tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}},
		{name: "mouse release", msg: tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}},
		{name: "focus", msg: tea.FocusMsg{}},
		{name: "window size", msg: tea.WindowSizeMsg{Width: 80, Height: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, ok := activitySource(tt.msg)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSource, source)
			}
		})
	}
}
