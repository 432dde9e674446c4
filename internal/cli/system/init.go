package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/utils"
)

type InitCmd struct {
	Force  bool `help:"Force reset by deleting the existing SQLite database before initialization."`
	Wizard bool `help:"Interactively choose timezone, generation URL and notifications."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := resetDatabase(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized reeltok storage at: %s\n", ctx.Store.GetConfigPath())

	if !c.Wizard {
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := newSettingsForm(&settings).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Wizard cancelled. Default settings kept.")
			return nil
		}
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings saved.")
	return nil
}

func resetDatabase(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if dbPath == "postgresql" {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}
	if _, err := os.Stat(dbPath); err == nil {
		ctx.PerformAutomaticBackup("init-force")
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func newSettingsForm(settings *models.Settings) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as Europe/Berlin, or Local").
				Value(&settings.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("unknown timezone %q", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Generation service URL").
				Value(&settings.GenerationURL),
			huh.NewConfirm().
				Title("Send tray notifications when the activity changes?").
				Value(&settings.NotificationsEnabled),
		),
	)
}
