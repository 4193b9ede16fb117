// Package tui implements the interactive vault browser: a Bubble Tea app
// with live filtering, an entry detail pane and a quit-and-run handoff.
package tui

import "github.com/charmbracelet/lipgloss"

// Kind glyphs — convey meaning without relying on color alone.
const (
	GlyphCommand  = "$"
	GlyphAPI      = "⇄"
	GlyphSnippet  = "✂"
	GlyphFile     = "▤"
	GlyphPlaybook = "≡"
	GlyphNote     = "✎"
)

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorBlue   = lipgloss.Color("39")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan).
	Padding(0, 1)

var countStyle = lipgloss.NewStyle().
	Faint(true).
	Padding(0, 1)

// --- Entry list styles ---

var (
	rowNormal = lipgloss.NewStyle().
			Foreground(colorWhite)

	rowSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	rowKind = lipgloss.NewStyle().
		Foreground(colorBlue)

	rowTags = lipgloss.NewStyle().
		Faint(true)

	rowExecutable = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// --- Detail pane styles ---

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	contentStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// --- Key bar styles ---

var (
	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	keyDescStyle = lipgloss.NewStyle().
			Faint(true)
)
