package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all browser key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Detail key.Binding
	Run    key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "detail"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// keyBarText renders the context-sensitive key hint string.
func keyBarText(filtering bool, detail bool, executable bool) string {
	if filtering {
		return keyStyle.Render("Enter") + keyDescStyle.Render(":apply") + "  " +
			keyStyle.Render("Esc") + keyDescStyle.Render(":clear")
	}
	if detail {
		bar := keyStyle.Render("Esc") + keyDescStyle.Render(":back")
		if executable {
			bar += "  " + keyStyle.Render("r") + keyDescStyle.Render(":run")
		}
		return bar + "  " + keyStyle.Render("q") + keyDescStyle.Render(":quit")
	}
	bar := keyStyle.Render("↑↓") + keyDescStyle.Render(":browse") + "  " +
		keyStyle.Render("enter") + keyDescStyle.Render(":detail") + "  " +
		keyStyle.Render("/") + keyDescStyle.Render(":filter")
	if executable {
		bar += "  " + keyStyle.Render("r") + keyDescStyle.Render(":run")
	}
	return bar + "  " + keyStyle.Render("q") + keyDescStyle.Render(":quit")
}
