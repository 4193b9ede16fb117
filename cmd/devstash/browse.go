package main

import (
	"github.com/spf13/cobra"

	"github.com/devstash/devstash/pkg/tui"
	"github.com/devstash/devstash/pkg/vault"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the vault interactively",
	Long: `Open a full-screen browser over the vault: filter entries live,
inspect one in detail, and hand an executable entry straight to run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		entries, err := store.List(vault.Filter{})
		if err != nil {
			return err
		}

		selected, err := tui.Browse(entries)
		if err != nil {
			return err
		}
		if selected == "" {
			return nil
		}
		return runRun(cmd, []string{selected})
	},
}
