package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderer is a package-level glamour renderer (auto style, no word-wrap —
// the pane handles wrapping).
var renderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err == nil {
		renderer = r
	}
}

// renderMarkdown converts a markdown string to styled terminal output.
// Falls back to the raw input if glamour is unavailable or rendering fails.
func renderMarkdown(md string) string {
	if renderer == nil || strings.TrimSpace(md) == "" {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// renderCode renders source text as a fenced block so glamour applies
// syntax highlighting. lang may be empty.
func renderCode(code, lang string) string {
	return renderMarkdown(fmt.Sprintf("```%s\n%s\n```", lang, code))
}
