// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "fits", in: "checks", max: 10, want: "checks"},
		{name: "exact", in: "checks", max: 6, want: "checks"},
		{name: "cut", in: "bankAccounts", max: 8, want: "bankA..."},
		{name: "multibyte", in: "chèques émis", max: 7, want: "chèq..."},
		{name: "tiny max", in: "vendors", max: 2, want: "ve"},
		{name: "no limit", in: "vendors", max: 0, want: "vendors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitText(tt.in, tt.max))
		})
	}
}

func TestRenderPage(t *testing.T) {
	page := renderPage("UNLOCK", "", "enter: unlock")

	assert.Contains(t, page, "UNLOCK")
	assert.Contains(t, page, "enter: unlock │ ctrl+c: quit")
	assert.Contains(t, page, "-")
	assert.Contains(t, renderPage("ABOUT", "body", ""), "ctrl+c: quit")
}
