// Package style provides shared UI styling primitives for the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Text styles.
var (
	// Name renders package names.
	Name = lipgloss.NewStyle().Bold(true)
	// Muted renders secondary details such as commits.
	Muted = lipgloss.NewStyle().Foreground(Slate)
	// Published renders the published marker.
	Published = lipgloss.NewStyle().Foreground(Green)
	// Unpublished renders the unpublished marker.
	Unpublished = lipgloss.NewStyle().Foreground(Yellow)
	// Source renders the resolution source tag.
	Source = lipgloss.NewStyle().Foreground(Iris)
)
