package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devstash/devstash/pkg/schema"
)

var (
	addKind     string
	addDesc     string
	addTags     []string
	addFromFile string
	addLanguage string
	addMethod   string
	addURL      string
	addHeaders  []string
)

var addCmd = &cobra.Command{
	Use:   "add <name> [content]",
	Short: "Add an entry to the vault",
	Long: `Add an entry to the vault. Content comes from the second argument,
--file, or stdin when neither is given. API entries take their request
line from --method/--url and use content as the request body.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := openVault()
	if err != nil {
		return err
	}

	name := args[0]
	content, err := readContent(args)
	if err != nil {
		return err
	}

	entry, err := schema.New(schema.Kind(addKind), name, addDesc, content, addTags)
	if err != nil {
		return err
	}

	switch entry.Kind {
	case schema.KindAPI:
		if addURL == "" {
			return fmt.Errorf("api entries require --url")
		}
		headers, err := parseHeaders(addHeaders)
		if err != nil {
			return err
		}
		entry.API = &schema.APIRequest{Method: addMethod, URL: addURL, Headers: headers}
	case schema.KindSnippet:
		entry.Language = addLanguage
	case schema.KindFile:
		entry.Language = addLanguage
		if addFromFile != "" {
			entry.Filename = filepath.Base(addFromFile)
		}
	}

	if err := store.Add(entry); err != nil {
		return err
	}
	fmt.Printf("Added %s entry %q (%s)\n", entry.Kind, entry.Name, entry.ID)
	return nil
}

// readContent picks the entry content source: positional arg, --file, or
// stdin.
func readContent(args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	if addFromFile != "" {
		data, err := os.ReadFile(addFromFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", addFromFile, err)
		}
		return string(data), nil
	}
	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no content given (pass it as an argument, via --file, or on stdin)")
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed header %q (want Name: value)", h)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers, nil
}

func init() {
	addCmd.Flags().StringVarP(&addKind, "kind", "k", "command", "Entry kind: command, api, snippet, file, playbook, or note")
	addCmd.Flags().StringVarP(&addDesc, "description", "d", "", "One-line description")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tag (repeatable)")
	addCmd.Flags().StringVar(&addFromFile, "file", "", "Read content from this file")
	addCmd.Flags().StringVar(&addLanguage, "language", "", "Language hint for snippet/file highlighting")
	addCmd.Flags().StringVar(&addMethod, "method", "", "HTTP method for api entries (default GET)")
	addCmd.Flags().StringVar(&addURL, "url", "", "URL for api entries")
	addCmd.Flags().StringArrayVar(&addHeaders, "header", nil, "HTTP header for api entries (Name: value, repeatable)")
}
