package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/devstash/devstash/pkg/schema"
)

// Model is the top-level Bubble Tea model for the vault browser.
type Model struct {
	entries []*schema.Entry // full vault, sorted by the caller
	visible []*schema.Entry // entries matching the current filter
	cursor  int

	filter    textinput.Model
	filtering bool
	detail    bool

	width  int
	height int

	selected string // entry handed off for execution on quit
}

// New creates a browser over the given entries.
func New(entries []*schema.Entry) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = keyStyle
	return Model{
		entries: entries,
		visible: entries,
		filter:  ti,
	}
}

// Selected returns the entry name picked with the run key, or "" when the
// browser was quit without picking one.
func (m Model) Selected() string {
	return m.selected
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Reset()
		m.filter.Blur()
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.detail && msg.String() == "esc" {
			m.detail = false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Detail):
		if m.current() != nil {
			m.detail = !m.detail
		}
		return m, nil

	case key.Matches(msg, keys.Run):
		if e := m.current(); e != nil && e.Kind.Executable() {
			m.selected = e.Name
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// applyFilter recomputes visible from the filter text, matching name, tags
// and description case-insensitively.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.entries
	} else {
		m.visible = nil
		for _, e := range m.entries {
			hay := strings.ToLower(e.Name + " " + e.Description + " " + strings.Join(e.Tags, " "))
			if strings.Contains(hay, query) {
				m.visible = append(m.visible, e)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m Model) current() *schema.Entry {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func kindGlyph(k schema.Kind) string {
	switch k {
	case schema.KindCommand:
		return GlyphCommand
	case schema.KindAPI:
		return GlyphAPI
	case schema.KindSnippet:
		return GlyphSnippet
	case schema.KindFile:
		return GlyphFile
	case schema.KindPlaybook:
		return GlyphPlaybook
	case schema.KindNote:
		return GlyphNote
	}
	return "?"
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("devstash"))
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d entries", len(m.visible), len(m.entries))))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.detail {
		if e := m.current(); e != nil {
			b.WriteString(m.viewDetail(e))
		}
	} else {
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	exec := false
	if e := m.current(); e != nil {
		exec = e.Kind.Executable()
	}
	b.WriteString(keyBarText(m.filtering, m.detail, exec))
	return b.String()
}

func (m Model) viewList() string {
	if len(m.visible) == 0 {
		return countStyle.Render("no entries match")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i, e := range m.visible {
		glyph := rowKind.Render(kindGlyph(e.Kind))
		name := e.Name
		if e.Kind.Executable() {
			name = rowExecutable.Render(name)
		}
		tags := ""
		if len(e.Tags) > 0 {
			tags = rowTags.Render("  [" + strings.Join(e.Tags, ", ") + "]")
		}

		row := fmt.Sprintf("%s %s%s", glyph, name, tags)
		if i == m.cursor {
			row = rowSelected.Render("▸ ") + row
		} else {
			row = rowNormal.Render("  ") + row
		}
		b.WriteString(runewidth.Truncate(row, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDetail(e *schema.Entry) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label+": ") + detailValueStyle.Render(value))
		b.WriteString("\n")
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
		method := e.API.Method
		if method == "" {
			method = "GET"
		}
		field("Request", fmt.Sprintf("%s %s", strings.ToUpper(method), e.API.URL))
	}
	if e.Kind == schema.KindFile {
		field("Filename", e.Filename)
	}
	b.WriteString("\n")

	switch e.Kind {
	case schema.KindNote:
		b.WriteString(renderMarkdown(e.Content))
	case schema.KindSnippet, schema.KindFile:
		b.WriteString(renderCode(e.Content, e.Language))
	default:
		b.WriteString(contentStyle.Render(e.Content))
	}

	return panelBorder.Render(b.String())
}

// Browse runs the browser over a vault and returns the entry name picked
// for execution, or "" when none was picked.
func Browse(entries []*schema.Entry) (string, error) {
	prog := tea.NewProgram(New(entries), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("run browser: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return model.Selected(), nil
}
