// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/models"
)

type statsReport struct {
	EncryptionEnabled bool                `json:"encryption_enabled"`
	NeedsMigration    bool                `json:"needs_migration"`
	Sensitive         models.StorageStats `json:"sensitive"`
	Usage             models.UsageStats   `json:"usage"`
}

func (a *App) statsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show encryption and usage statistics",
		Long: `Counts the sensitive values by representation and reports the raw space
used by the storage. No password is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			v, m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer v.Close()

			report := statsReport{EncryptionEnabled: m.IsEncryptionEnabled()}
			if report.Sensitive, err = m.Stats(ctx); err != nil {
				return err
			}
			if report.NeedsMigration, err = m.NeedsMigration(ctx); err != nil {
				return err
			}
			if report.Usage, err = store.Usage(ctx, v.Raw); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			state := "disabled"
			if report.EncryptionEnabled {
				state = "enabled"
			}
			fmt.Fprintf(out, "Encryption:        %s\n", state)
			fmt.Fprintf(out, "Sensitive values:  %d\n", report.Sensitive.Total)
			fmt.Fprintf(out, "  encrypted:       %d\n", report.Sensitive.Encrypted)
			fmt.Fprintf(out, "  plain text:      %d\n", report.Sensitive.PlainText)
			fmt.Fprintf(out, "Stored keys:       %d\n", report.Usage.Keys)
			fmt.Fprintf(out, "Used bytes:        %d\n", report.Usage.UsedBytes)
			if report.NeedsMigration {
				hint(out, "Plain text sensitive values remain, they are encrypted on the next unlock")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
