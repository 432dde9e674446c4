package timetable

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reeltok/reeltok/internal/models"
)

// Model lists the day's slots with the current one selected.
type Model struct {
	table table.Model
	slots []models.ActivitySlot
}

func New(slots []models.ActivitySlot, width, height int) Model {
	columns := []table.Column{
		{Title: "Start", Width: 6},
		{Title: "Activity", Width: 28},
		{Title: "Type", Width: 11},
		{Title: "Category", Width: 11},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 5)),
		table.WithWidth(max(width, 60)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := Model{table: t}
	m.SetSlots(slots)
	return m
}

func (m *Model) SetSlots(slots []models.ActivitySlot) {
	m.slots = slots
	rows := make([]table.Row, len(slots))
	for i, slot := range slots {
		rows[i] = table.Row{slot.Start.String(), slot.Label, string(slot.Type), string(slot.Category())}
	}
	m.table.SetRows(rows)
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

// Highlight moves the cursor to the slot that is currently playing. A nil
// slot (before the first activity) leaves the cursor at the top.
func (m *Model) Highlight(current *models.ActivitySlot) {
	if current == nil {
		m.table.SetCursor(0)
		return
	}
	for i, slot := range m.slots {
		if slot.Start == current.Start {
			m.table.SetCursor(i)
			return
		}
	}
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.table.Cursor()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.table.View()
}
