package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/utils"
)

// NewOverrideForm asks for the instant to pretend it is.
func NewOverrideForm(fm *OverrideFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pretend it is").
				Description("HH:MM today, or an RFC3339 instant").
				Placeholder("07:15").
				Value(&fm.At).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a time")
					}
					_, err := utils.ParseInstant(s, time.Now())
					return err
				}),
		),
	).WithShowHelp(true)
}

// applyOverride persists and activates the override typed into the form.
func (m *Model) applyOverride() error {
	at, err := utils.ParseInstant(m.overrideForm.At, m.clock.Base().Now())
	if err != nil {
		return err
	}
	if m.store != nil {
		if err := m.store.SetClockOverride(at); err != nil {
			return fmt.Errorf("failed to save override: %w", err)
		}
	}
	m.clock.Set(at)
	logger.Info("Clock override set from TUI", "at", at)
	return nil
}

func (m *Model) clearOverride() error {
	if !m.clock.Active() {
		return nil
	}
	if m.store != nil {
		if err := m.store.ClearClockOverride(); err != nil {
			return fmt.Errorf("failed to clear override: %w", err)
		}
	}
	m.clock.Clear()
	logger.Info("Clock override cleared from TUI")
	return nil
}
