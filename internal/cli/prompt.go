// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PasswordPrompt reads a password without echoing it.
type PasswordPrompt interface {
	ReadPassword(prompt string) (string, error)
}

type terminalPrompt struct {
	in  *os.File
	out io.Writer
}

// TerminalPrompt reads passwords from stdin, which must be a terminal,
// printing prompts to stderr.
func TerminalPrompt() PasswordPrompt {
	return terminalPrompt{in: os.Stdin, out: os.Stderr}
}

func (p terminalPrompt) ReadPassword(prompt string) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	fmt.Fprint(p.out, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// readPassword asks once and rejects an empty answer.
func readPassword(p PasswordPrompt, prompt string) (string, error) {
	password, err := p.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrEmptyPassword
	}
	return password, nil
}

// readNewPassword asks for what twice and requires both answers to match.
func readNewPassword(p PasswordPrompt, what string) (string, error) {
	password, err := readPassword(p, "Enter "+what+": ")
	if err != nil {
		return "", err
	}

	confirm, err := p.ReadPassword("Repeat " + what + ": ")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", ErrPasswordMismatch
	}
	return password, nil
}
