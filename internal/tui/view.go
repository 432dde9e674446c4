package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n")

	if at, ok := m.clock.Override(); ok {
		b.WriteString(overrideBannerStyle.Render("Clock override active: " + utils.FormatClock(at)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case constants.StateOverride:
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	case constants.StateTimetable:
		b.WriteString(m.timetableModel.View())
	default:
		b.WriteString(m.nowModel.View())
	}

	if m.formError != "" {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render("Error: " + m.formError))
	}

	if m.state != constants.StateOverride {
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
	}

	return docStyle.Render(b.String())
}

func (m Model) tabs() string {
	names := []string{"Now", "Timetable"}
	active := m.state
	if active == constants.StateOverride {
		active = m.previousState
	}

	rendered := make([]string, len(names))
	for i, name := range names {
		if constants.SessionState(i) == active {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
