// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) enableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Encrypt sensitive values under a new password",
		Long: `Encrypts every sensitive value that is still plain text and records that
encryption is enabled. The password is asked twice and never stored; losing
it makes the encrypted values unreadable.

Examples:
  vaultctl enable
  vaultctl enable --storage sqlite --dsn printchecks.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer v.Close()

			if m.IsEncryptionEnabled() {
				success(out, "Encryption is already enabled")
				hint(out, "Use %s to change the password", code("vaultctl rotate"))
				return nil
			}

			password, err := readNewPassword(a.prompt, "new password")
			if err != nil {
				return err
			}

			stop := a.startSpinner(cmd, "Encrypting sensitive values...")
			err = m.MigrateToEncrypted(ctx, password)
			stop()
			if err != nil {
				failure(out, "Encryption failed: %v", err)
				return err
			}

			a.logger.Info().Str("func", "enable").Msg("encryption enabled")
			success(out, "Encryption enabled")
			if stats, err := m.Stats(ctx); err == nil {
				hint(out, "%d of %d sensitive values encrypted", stats.Encrypted, stats.Total)
			}
			return nil
		},
	}
}
