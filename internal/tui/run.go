package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/scheduler"
	"github.com/reeltok/reeltok/internal/storage"
)

// Run starts the dashboard and blocks until the user quits.
func Run(store storage.Provider, resolver *scheduler.Resolver, clk *clock.Overridable, selector MediaSelector) error {
	p := tea.NewProgram(NewModel(store, resolver, clk, selector), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited: %w", err)
	}
	return nil
}
