// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

// ANSI palette indexes.
const (
	colorRed    = lipgloss.Color("9")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
)

var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)

	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)

	// overlayBoxStyle frames the inactivity warning on top of the page.
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorYellow).Padding(1, 2)
)
