// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = time.Second

// warningModel is the overlay shown while the session guard counts down to
// a lock.
type warningModel struct {
	deadline  time.Time
	remaining time.Duration
}

func newWarningModel(deadline, now time.Time) warningModel {
	m := warningModel{deadline: deadline}
	m.update(now)
	return m
}

func (m *warningModel) update(now time.Time) {
	m.remaining = m.deadline.Sub(now)
	if m.remaining < 0 {
		m.remaining = 0
	}
}

func (m warningModel) View() string {
	secs := int(m.remaining.Round(time.Second) / time.Second)
	content := warningStyle.Render("Session about to lock") +
		fmt.Sprintf("\n\nNo activity detected. Locking in %d:%02d.\n\n", secs/60, secs%60) +
		helpStyle.Render("enter: keep session active")
	return overlayBoxStyle.Render(content)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
