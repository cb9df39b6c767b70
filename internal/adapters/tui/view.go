package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/waypoint/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.zoneList(),
		m.activePane(),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m *Model) zoneList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ZONES") + "\n\n")
	if len(m.Keys) == 0 {
		s.WriteString(zoneAbsentStyle.Render("no zones registered") + "\n")
	}
	for i, k := range m.Keys {
		s.WriteString(m.renderZoneRow(i, k) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderZoneRow(index int, k domain.ZoneKey) string {
	cursor := "  "
	if index == m.SelectedIdx {
		cursor = activeStyle.Render(style.Pointer + " ")
	}

	name := k.String()
	if k == m.ActiveKey {
		name = activeStyle.Render(name)
	}

	return fmt.Sprintf("%s%s %s %s", cursor, m.zoneIcon(k), name, m.zoneLabel(k))
}

func (m *Model) zoneIcon(k domain.ZoneKey) string {
	switch m.zones.State(k) {
	case loader.EntrySettled:
		return zoneSettledStyle.Render(style.Check)
	case loader.EntryPending:
		return m.spinner.View()
	default:
		if _, failed := m.Failures[k]; failed {
			return zoneFailedStyle.Render(style.Cross)
		}
		return zoneAbsentStyle.Render(style.Circle)
	}
}

func (m *Model) zoneLabel(k domain.ZoneKey) string {
	state := m.zones.State(k)
	if state == loader.EntryAbsent {
		if msg, failed := m.Failures[k]; failed {
			return zoneFailedStyle.Render(msg)
		}
	}
	return zoneAbsentStyle.Render(state.String())
}

func (m *Model) activePane() string {
	switch {
	case m.ActiveKey.IsZero():
		return zoneAbsentStyle.Render("no active zone")
	case m.BundleErr != nil:
		return fmt.Sprintf("%s %s", activeStyle.Render(m.ActiveKey.String()),
			zoneFailedStyle.Render(m.BundleErr.Error()))
	case m.Bundle == nil:
		return fmt.Sprintf("%s %s", activeStyle.Render(m.ActiveKey.String()),
			zonePendingStyle.Render("loading"+style.Ellipse))
	default:
		return fmt.Sprintf("%s %s", activeStyle.Render(m.ActiveKey.String()),
			zoneAbsentStyle.Render(fmt.Sprintf("%d bytes, digest %s", m.Bundle.Size, m.Bundle.Digest)))
	}
}

func (m *Model) statusLine() string {
	routing := "on"
	if !m.Routing {
		routing = "off"
	}
	focus := "focused"
	if !m.Visible() {
		focus = "hidden"
	}

	line := fmt.Sprintf("routing %s %s %s", routing, style.Dot, focus)
	if m.LastEvent != "" {
		line += fmt.Sprintf(" %s %s", style.Dot, m.LastEvent)
	}
	return zoneAbsentStyle.Render(line)
}
