// Package style provides the colors and glyphs shared by the logger and the
// render hosts.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Pointer = "›"
	Dot     = "●"
	Circle  = "○"
	Ellipse = "…"
)

// Text styles used by the render hosts.
var (
	Muted    = lipgloss.NewStyle().Foreground(Slate)
	Active   = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Success  = lipgloss.NewStyle().Foreground(Green)
	Failure  = lipgloss.NewStyle().Foreground(Red)
	Pending  = lipgloss.NewStyle().Foreground(Yellow)
	Selected = lipgloss.NewStyle().Foreground(Mist).Background(Iris)
)
