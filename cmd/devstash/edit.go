package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devstash/devstash/pkg/providers"
	"github.com/devstash/devstash/pkg/schema"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit an entry in $EDITOR",
	Long: `Open the entry as a JSON document in the configured editor. The
document is validated on save; the entry's kind and ID cannot change.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	store, err := openVault()
	if err != nil {
		return err
	}
	entry, err := store.Get(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "devstash-edit-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	if err := openEditor(path); err != nil {
		return err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read edited file: %w", err)
	}

	updated, verrs := schema.ValidateEntryDocument(edited)
	if len(verrs) > 0 {
		var msgs []string
		for _, ve := range verrs {
			msgs = append(msgs, ve.Error())
		}
		return fmt.Errorf("edited entry is invalid:\n  %s", strings.Join(msgs, "\n  "))
	}
	updated.ID = entry.ID

	if err := store.Update(updated); err != nil {
		return err
	}
	fmt.Printf("Updated %q\n", updated.Name)
	return nil
}

// openEditor runs the configured editor attached to the terminal.
func openEditor(path string) error {
	editor := cfg.ResolveEditor()
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", editor, err)
	}
	return nil
}

// --- delete ---

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry from the vault",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		entry, err := store.Get(args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			interact, err := providers.NewTerminalInteraction()
			if err != nil {
				return err
			}
			defer interact.Close()
			ok, err := interact.Confirm(fmt.Sprintf("delete %s entry %q", entry.Kind, entry.Name))
			if err != nil || !ok {
				fmt.Println("aborted")
				return nil
			}
		}

		if err := store.Delete(entry.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", entry.Name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
}
