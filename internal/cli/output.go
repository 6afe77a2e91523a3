// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.RedString("✗")+" "+fmt.Sprintf(format, args...))
}

func hint(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}

func code(s string) string {
	return color.YellowString(s)
}

// startSpinner shows message with a spinner on stderr until the returned
// function is called. Nothing is drawn in quiet mode or off a terminal.
func (a *App) startSpinner(cmd *cobra.Command, message string) func() {
	if a.quiet {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		a.logger.Warn().Err(err).Str("func", "*App.startSpinner").Msg("failed to set spinner color")
	}
	s.Start()
	return s.Stop
}
