package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/reeltok/reeltok/internal/constants"
)

const viewCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nowModel.SetSize(msg.Width, msg.Height-4)
		m.timetableModel.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tick()

	case overrideChangedMsg:
		m.refresh()
		return m, waitForOverride(m.clock.Changes())
	}

	if m.state == constants.StateOverride {
		return m.updateOverrideForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + viewCount) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.Override):
			m.previousState = m.state
			m.state = constants.StateOverride
			m.formError = ""
			m.overrideForm = &OverrideFormModel{}
			m.form = NewOverrideForm(m.overrideForm)
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Clear):
			m.formError = ""
			if err := m.clearOverride(); err != nil {
				m.formError = err.Error()
			}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StateTimetable {
		m.timetableModel, cmd = m.timetableModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateOverrideForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applyOverride(); err != nil {
			m.closeForm()
			m.formError = err.Error()
			return m, nil
		}
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.overrideForm = nil
}
