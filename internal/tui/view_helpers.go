// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"
)

const (
	pageWidth  = 54
	quitFooter = "ctrl+c: quit"
	ellipsis   = "..."
)

var pageRule = strings.Repeat("─", pageWidth)

// renderPage lays out a titled page between two rules with the page hot
// keys in front of the global quit key.
func renderPage(title, body, hotKeys string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	footer := quitFooter
	if hk := strings.TrimSpace(hotKeys); hk != "" {
		footer = hk + " │ " + quitFooter
	}

	page := strings.Join([]string{
		titleStyle.Render(title),
		pageRule,
		"",
		body,
		"",
		pageRule,
		helpStyle.Render(footer),
	}, "\n")
	return appStyle.Render(page)
}

// fitText shortens v to at most max runes, marking the cut with an ellipsis.
func fitText(v string, max int) string {
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	if max <= len(ellipsis) {
		return string(runes[:max])
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
