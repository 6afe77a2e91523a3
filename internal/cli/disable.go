// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) disableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Decrypt all values back to plain text",
		Long: `Decrypts every encrypted value with the current password, removes the
password check and records that encryption is disabled.`,
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
				success(out, "Encryption is already disabled")
				return nil
			}

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

			stop := a.startSpinner(cmd, "Decrypting values...")
			err = m.MigrateToPlainText(ctx, password)
			stop()
			if err != nil {
				failure(out, "Decryption failed: %v", err)
				return err
			}

			a.logger.Info().Str("func", "disable").Msg("encryption disabled")
			success(out, "Encryption disabled, values are stored as plain text")
			return nil
		},
	}
}
