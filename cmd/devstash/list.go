package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/devstash/devstash/pkg/schema"
	"github.com/devstash/devstash/pkg/vault"
)

var (
	listKind string
	listTag  string

	showRaw bool
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	tableKindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	tableTagStyle    = lipgloss.NewStyle().Faint(true)
	execMarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List vault entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		kind := schema.Kind(listKind)
		if listKind != "" && !kind.Valid() {
			return fmt.Errorf("unknown kind %q", listKind)
		}
		entries, err := store.List(vault.Filter{Kind: kind, Tag: listTag})
		if err != nil {
			return err
		}
		printTable(entries)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entries by name, description, content and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		entries, err := store.Search(args[0])
		if err != nil {
			return err
		}
		printTable(entries)
		return nil
	},
}

// printTable renders entries as a fixed-width table. Long cells are
// truncated with an ellipsis rather than wrapped.
func printTable(entries []*schema.Entry) {
	if len(entries) == 0 {
		fmt.Println("no entries")
		return
	}

	const (
		wName = 24
		wKind = 10
		wDesc = 40
		wTags = 24
	)

	fmt.Printf("%s %s %s %s\n",
		tableHeaderStyle.Render(runewidth.FillRight("NAME", wName)),
		tableHeaderStyle.Render(runewidth.FillRight("KIND", wKind)),
		tableHeaderStyle.Render(runewidth.FillRight("DESCRIPTION", wDesc)),
		tableHeaderStyle.Render("TAGS"))

	for _, e := range entries {
		name := runewidth.Truncate(e.Name, wName, "…")
		if e.Kind.Executable() {
			name = execMarkStyle.Render(runewidth.FillRight(name, wName))
		} else {
			name = runewidth.FillRight(name, wName)
		}
		kind := tableKindStyle.Render(runewidth.FillRight(string(e.Kind), wKind))
		desc := runewidth.FillRight(runewidth.Truncate(e.Description, wDesc, "…"), wDesc)
		tags := tableTagStyle.Render(runewidth.Truncate(strings.Join(e.Tags, ", "), wTags, "…"))
		fmt.Printf("%s %s %s %s\n", name, kind, desc, tags)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one entry in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		entry, err := store.Get(args[0])
		if err != nil {
			return err
		}
		printEntry(entry)
		return nil
	},
}

func printEntry(e *schema.Entry) {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	field := func(name, value string) {
		if value != "" {
			fmt.Printf("%s %s\n", label.Render(name+":"), value)
		}
	}

	field("Name", e.Name)
	field("ID", e.ID)
	field("Kind", string(e.Kind))
	field("Description", e.Description)
	field("Tags", strings.Join(e.Tags, ", "))
	if !e.CreatedAt.IsZero() {
		field("Created", e.CreatedAt.Format("2006-01-02 15:04"))
	}
	if e.Kind == schema.KindAPI && e.API != nil {
		method := strings.ToUpper(e.API.Method)
		if method == "" {
			method = "GET"
		}
		field("Request", fmt.Sprintf("%s %s", method, e.API.URL))
		for k, v := range e.API.Headers {
			field("Header", fmt.Sprintf("%s: %s", k, v))
		}
	}
	if e.Kind == schema.KindFile {
		field("Filename", e.Filename)
	}
	fmt.Println()
	fmt.Println(renderContent(e))
}

// renderContent styles entry content for the terminal: markdown for notes,
// a highlighted code fence for snippets and files, raw text otherwise.
func renderContent(e *schema.Entry) string {
	if showRaw {
		return e.Content
	}
	switch e.Kind {
	case schema.KindNote:
		return renderMarkdown(e.Content)
	case schema.KindSnippet, schema.KindFile:
		return renderMarkdown(fmt.Sprintf("```%s\n%s\n```", e.Language, e.Content))
	}
	return e.Content
}

func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Only entries of this kind")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only entries carrying this tag")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print content without styling")
}
