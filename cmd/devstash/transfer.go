package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devstash/devstash/pkg/schema"
	"github.com/devstash/devstash/pkg/vault"
)

var (
	exportOut    string
	exportFormat string
	importForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [name...]",
	Short: "Export entries as a JSON document",
	Long: `Export the named entries (or the whole vault) as a JSON array of
entry documents, suitable for devstash import on another machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}

		var entries []*schema.Entry
		if len(args) == 0 {
			entries, err = store.List(vault.Filter{})
			if err != nil {
				return err
			}
		} else {
			for _, name := range args {
				entry, err := store.Get(name)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}
		}

		var data []byte
		switch exportFormat {
		case "json":
			data, err = json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
		case "yaml":
			data, err = yaml.Marshal(entries)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", exportFormat)
		}

		if exportOut == "" || exportOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported %d entries to %s\n", len(entries), exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON export",
	Long: `Import entries from a devstash export file. Every document is
validated before anything is written; name collisions are skipped unless
--force replaces the existing entry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		docs, err := splitDocuments(data)
		if err != nil {
			return err
		}

		entries := make([]*schema.Entry, 0, len(docs))
		for i, doc := range docs {
			entry, verrs := schema.ValidateEntryDocument(doc)
			if len(verrs) > 0 {
				var msgs []string
				for _, ve := range verrs {
					msgs = append(msgs, ve.Error())
				}
				return fmt.Errorf("document %d is invalid:\n  %s", i+1, strings.Join(msgs, "\n  "))
			}
			entries = append(entries, entry)
		}

		added, replaced, skipped := 0, 0, 0
		for _, entry := range entries {
			if entry.ID == "" {
				entry.ID = schema.NewID()
			}
			err := store.Add(entry)
			switch {
			case err == nil:
				added++
			case errors.Is(err, vault.ErrExists) && importForce:
				existing, err := store.Lookup(entry.Name)
				if err != nil {
					return err
				}
				entry.ID = existing.ID
				if err := store.Update(entry); err != nil {
					return err
				}
				replaced++
			case errors.Is(err, vault.ErrExists):
				fmt.Printf("skipping %q (already exists)\n", entry.Name)
				skipped++
			default:
				return err
			}
		}

		fmt.Printf("Imported %d entries (%d replaced, %d skipped)\n", added, replaced, skipped)
		return nil
	},
}

// splitDocuments accepts either a JSON array of entry documents or a single
// document, returning one raw message per entry.
func splitDocuments(data []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var docs []json.RawMessage
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parse export file: %w", err)
		}
		return docs, nil
	}
	return []json.RawMessage{json.RawMessage(data)}, nil
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for entry documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := schema.GenerateEntryJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or yaml (import reads json only)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Replace entries whose names already exist")
}
