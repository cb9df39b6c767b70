package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/waypoint/internal/ui/style"
)

var (
	zoneAbsentStyle  = style.Muted
	zonePendingStyle = style.Pending
	zoneSettledStyle = style.Success
	zoneFailedStyle  = style.Failure
	activeStyle      = style.Active

	titleStyle = style.Selected.
			Bold(true).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().
			MarginBottom(1)
)
