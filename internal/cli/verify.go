// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check a password against the stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer v.Close()

			password, err := readPassword(a.prompt, "Password: ")
			if err != nil {
				return err
			}

			ok, err := m.VerifyPassword(ctx, password)
			if err != nil {
				return err
			}
			if !ok {
				failure(out, "Password does not match")
				return ErrVerificationFailed
			}

			success(out, "Password is correct")
			return nil
		},
	}
}
