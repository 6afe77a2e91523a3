// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/models"
)

const (
	maxValueLines  = 20
	maxLineWidth   = 76
	statusLifetime = 3 * time.Second
)

// BrowseModel lists the stored keys and shows the decrypted value of the
// selected one.
type BrowseModel struct {
	ctx       context.Context
	vault     Vault
	copyValue func(string) error

	keys    []string
	stats   models.StorageStats
	idx     int
	loading bool

	selected string
	value    []byte

	status string
	errMsg string
}

// NewBrowseModel creates a [BrowseModel]. Keys are loaded by Init.
func NewBrowseModel(ctx context.Context, vault Vault) *BrowseModel {
	return &BrowseModel{
		ctx:       ctx,
		vault:     vault,
		copyValue: clipboard.WriteAll,
		loading:   true,
	}
}

// Init implements [tea.Model].
func (m *BrowseModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoadKeys()
}

// Update implements [tea.Model].
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case keysLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.keys = msg.keys
		m.stats = msg.stats
		if m.idx >= len(m.keys) {
			m.idx = len(m.keys) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case valueLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.selected = msg.key
		m.value = msg.value
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *BrowseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.keys)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		current, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdLoadValue(current)
	case key.Matches(msg, keys.esc):
		m.selected = ""
		m.value = nil
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadKeys()
	case key.Matches(msg, keys.copy):
		if m.selected == "" {
			return m, m.setStatus("Nothing to copy, open a value first")
		}
		if err := m.copyValue(string(m.value)); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		return m, m.setStatus("Copied " + m.selected)
	case key.Matches(msg, keys.lock):
		if !m.vault.IsEncryptionEnabled() {
			return m, m.setStatus("Encryption is off, nothing to lock")
		}
		m.vault.Lock()
		m.selected = ""
		m.value = nil
		return m, func() tea.Msg { return lockedMsg{} }
	}

	return m, nil
}

// View implements [tea.Model].
func (m *BrowseModel) View() string {
	var b strings.Builder

	encryption := "off"
	if m.vault.IsEncryptionEnabled() {
		encryption = "on"
	}
	fmt.Fprintf(&b, "Encryption: %s │ sensitive values: %d (%d encrypted, %d plain text)\n\n",
		encryption, m.stats.Total, m.stats.Encrypted, m.stats.PlainText)

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.keys) == 0:
		b.WriteString("No stored values\n")
	default:
		for i, k := range m.keys {
			line := "  " + k
			if i == m.idx {
				line = selectedStyle.Render("> " + k)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.selected != "" {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(m.selected))
		b.WriteString("\n")
		b.WriteString(formatValue(m.value))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("PRINTCHECKS STORAGE", strings.TrimRight(b.String(), "\n"),
		"↑/↓: select │ enter: open │ c: copy │ r: refresh │ L: lock │ v: version │ q: quit")
}

func (m *BrowseModel) current() (string, bool) {
	if len(m.keys) == 0 || m.idx < 0 || m.idx >= len(m.keys) {
		return "", false
	}
	return m.keys[m.idx], true
}

func (m *BrowseModel) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *BrowseModel) cmdLoadKeys() tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		all, err := vault.Keys(ctx)
		if err != nil {
			return keysLoadedMsg{err: err}
		}

		visible := make([]string, 0, len(all))
		for _, k := range all {
			if !service.IsMetadataKey(k) {
				visible = append(visible, k)
			}
		}

		stats, err := vault.Stats(ctx)
		if err != nil {
			return keysLoadedMsg{err: err}
		}
		return keysLoadedMsg{keys: visible, stats: stats}
	}
}

func (m *BrowseModel) cmdLoadValue(k string) tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		value, err := vault.Get(ctx, k)
		return valueLoadedMsg{key: k, value: value, err: err}
	}
}

// formatValue pretty-prints JSON values and clips long output.
func formatValue(value []byte) string {
	if len(value) == 0 {
		return "(empty)"
	}

	text := string(value)
	var indented bytes.Buffer
	if json.Indent(&indented, value, "", "  ") == nil {
		text = indented.String()
	}

	lines := strings.Split(text, "\n")
	if len(lines) > maxValueLines {
		lines = append(lines[:maxValueLines], fmt.Sprintf("... %d more lines", len(lines)-maxValueLines))
	}
	for i, line := range lines {
		lines[i] = fitText(line, maxLineWidth)
	}
	return strings.Join(lines, "\n")
}
