// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Re-encrypt sensitive values under a new password",
		Long: `Checks the current password, then decrypts every sensitive value and
encrypts it again under the new password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer v.Close()

			if !m.IsEncryptionEnabled() {
				failure(out, "Encryption is not enabled")
				hint(out, "Run %s first", code("vaultctl enable"))
				return ErrNotEnabled
			}

			oldPassword, err := readPassword(a.prompt, "Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := readNewPassword(a.prompt, "new password")
			if err != nil {
				return err
			}

			stop := a.startSpinner(cmd, "Rotating password...")
			err = m.ChangePassword(ctx, oldPassword, newPassword)
			stop()
			if err != nil {
				failure(out, "Rotation failed: %v", err)
				return err
			}

			a.logger.Info().Str("func", "rotate").Msg("password rotated")
			success(out, "Password changed")
			return nil
		},
	}
}
