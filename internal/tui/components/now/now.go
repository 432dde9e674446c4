package now

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	categoryColors = map[models.Category]lipgloss.Color{
		models.CategoryMeditation: lipgloss.Color("141"),
		models.CategoryWalking:    lipgloss.Color("114"),
		models.CategoryMeal:       lipgloss.Color("215"),
	}
)

// Model renders the "now playing" card. It holds no clock of its own; the
// parent pushes a fresh resolution on every refresh.
type Model struct {
	Resolution models.Resolution
	Next       *models.ActivitySlot
	Media      *models.MediaSelection
	MediaErr   error
	width      int
	height     int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Set replaces what the card shows.
func (m *Model) Set(res models.Resolution, next *models.ActivitySlot, selection *models.MediaSelection, mediaErr error) {
	m.Resolution = res
	m.Next = next
	m.Media = selection
	m.MediaErr = mediaErr
}

func (m Model) View() string {
	res := m.Resolution
	if res.At.IsZero() {
		return titleStyle.Render("Resolving...")
	}

	label := "Before the first activity"
	if res.Slot != nil {
		label = res.Slot.Label
	}

	category := lipgloss.NewStyle().
		Foreground(categoryColors[res.Category]).
		Bold(true).
		Render(strings.ToUpper(string(res.Category)))

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Now: %s", res.At.Format(constants.TimeFormat))),
	}
	if res.Slot != nil {
		lines = append(lines, timeStyle.Render(fmt.Sprintf("since %s", res.Slot.Start)))
	}
	lines = append(lines, activityStyle.Render(label), category)
	if res.Fallback {
		lines = append(lines, mutedStyle.Render("(fallback)"))
	}

	lines = append(lines, "", m.mediaView())

	if m.Next != nil {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("Up next: %s at %s (%s)", m.Next.Label, m.Next.Start, m.Next.Category())))
	} else {
		lines = append(lines, "", mutedStyle.Render("Last activity of the day"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) mediaView() string {
	if m.Media == nil {
		if m.MediaErr != nil {
			return mutedStyle.Render("No media: " + m.MediaErr.Error())
		}
		return mutedStyle.Render("No media selected")
	}
	out := fmt.Sprintf("Video: %s\n%s", m.Media.Video.Title, m.Media.Video.StreamURL())
	if m.Media.Audio != nil {
		out += fmt.Sprintf("\nAudio: %s", m.Media.Audio.Title)
	}
	return mutedStyle.Render(out)
}
