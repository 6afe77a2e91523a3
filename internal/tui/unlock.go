// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// UnlockModel is the Bubble Tea model for the unlock screen. It renders a
// masked password input and dispatches an async unlock command on enter.
// On success it navigates to the browse page.
type UnlockModel struct {
	ctx   context.Context
	vault Vault

	input      textinput.Model
	submitting bool
	errMsg     string
}

// NewUnlockModel creates an [UnlockModel] with a focused, masked password
// input.
func NewUnlockModel(ctx context.Context, vault Vault) *UnlockModel {
	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'
	passwordInput.Focus()

	return &UnlockModel{
		ctx:   ctx,
		vault: vault,
		input: passwordInput,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *UnlockModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - unlockResultMsg: clears the input; on success navigates to browse.
//   - esc: quits.
//   - enter: dispatches the async unlock command.
//
// All other key events are forwarded to the password input.
func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(unlockResultMsg); ok {
		m.submitting = false
		m.input.Reset()
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg { return NavigateTo{Page: pageBrowse} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			password := m.input.Value()
			if strings.TrimSpace(password) == "" {
				m.errMsg = "Password is required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdUnlock(password)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *UnlockModel) View() string {
	var b strings.Builder
	b.WriteString("Stored data is encrypted. Enter the password to unlock it.\n\n")
	b.WriteString("Password │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Unlocking...]\n")
	} else {
		b.WriteString("\n[Unlock]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("UNLOCK", strings.TrimRight(b.String(), "\n"), "enter: unlock │ esc: quit")
}

func (m *UnlockModel) cmdUnlock(password string) tea.Cmd {
	ctx := m.ctx
	vault := m.vault

	return func() tea.Msg {
		return unlockResultMsg{err: vault.Unlock(ctx, password)}
	}
}
