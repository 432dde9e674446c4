package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
	"github.com/reeltok/reeltok/internal/storage"
	"github.com/reeltok/reeltok/internal/tui/components/now"
	"github.com/reeltok/reeltok/internal/tui/components/timetable"
)

// MediaSelector picks media for a category.
type MediaSelector interface {
	Select(ctx context.Context, category models.Category) (models.MediaSelection, error)
}

type OverrideFormModel struct {
	At string
}

type Model struct {
	store          storage.Provider
	resolver       *scheduler.Resolver
	clock          *clock.Overridable
	selector       MediaSelector
	state          constants.SessionState
	previousState  constants.SessionState
	keys           KeyMap
	help           help.Model
	nowModel       now.Model
	timetableModel timetable.Model
	form           *huh.Form
	overrideForm   *OverrideFormModel
	formError      string
	quitting       bool
	width          int
	height         int
}

// NewModel builds the dashboard. store and selector may be nil, in which
// case overrides are not persisted and no media is shown.
func NewModel(store storage.Provider, resolver *scheduler.Resolver, clk *clock.Overridable, selector MediaSelector) Model {
	if clk == nil {
		clk = clock.NewOverridable(nil)
	}
	m := Model{
		store:          store,
		resolver:       resolver,
		clock:          clk,
		selector:       selector,
		state:          constants.StateNow,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		nowModel:       now.New(),
		timetableModel: timetable.New(resolver.Slots(), 0, 0),
	}
	m.refresh()
	return m
}

type TickMsg time.Time

type overrideChangedMsg struct{}

// tick fires at the next wall-clock minute boundary.
func tick() tea.Cmd {
	wait := time.Until(time.Now().Truncate(time.Minute).Add(time.Minute))
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForOverride(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return overrideChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForOverride(m.clock.Changes()))
}

// refresh re-resolves the schedule against the effective clock.
func (m *Model) refresh() {
	at := m.clock.Now()
	res := m.resolver.Resolve(at)

	var next *models.ActivitySlot
	if slot, ok := m.resolver.Next(at); ok {
		next = &slot
	}

	var (
		selection *models.MediaSelection
		mediaErr  error
	)
	if m.selector != nil {
		sel, err := m.selector.Select(context.Background(), res.Category)
		if err != nil {
			mediaErr = err
		} else {
			selection = &sel
		}
	}

	m.nowModel.Set(res, next, selection, mediaErr)
	m.timetableModel.Highlight(res.Slot)
}

// Resolution returns what the dashboard currently shows.
func (m Model) Resolution() models.Resolution {
	return m.nowModel.Resolution
}

// State returns the active view.
func (m Model) State() constants.SessionState {
	return m.state
}
