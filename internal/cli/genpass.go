// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danford/PrintChecks/internal/crypto"
)

const defaultGeneratedLength = 24

func (a *App) genpassCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "genpass",
		Short: "Print a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if length <= 0 {
				return fmt.Errorf("length must be positive, got %d", length)
			}

			password, err := crypto.GeneratePassword(length)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", defaultGeneratedLength, "password length")
	return cmd
}
