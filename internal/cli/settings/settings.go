package settings

import (
	"fmt"
	"strings"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used to read the time of day, or 'Local'."`
	RefreshIntervalSec   *int    `help:"Seconds between schedule checks in watch and serve."`
	GenerationURL        *string `help:"Base URL of the generation service." name:"generation-url"`
	NotificationsEnabled *bool   `help:"Enable or disable tray notifications on activity changes."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Refresh Interval:      %d sec\n", settings.RefreshIntervalSec)
		fmt.Printf("  Generation URL:        %s\n", settings.GenerationURL)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.RefreshIntervalSec != nil {
		if *c.RefreshIntervalSec <= 0 {
			return fmt.Errorf("refresh interval must be positive, got %d", *c.RefreshIntervalSec)
		}
		settings.RefreshIntervalSec = *c.RefreshIntervalSec
		updated = true
	}
	if c.GenerationURL != nil {
		u := strings.TrimSpace(*c.GenerationURL)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("generation URL must start with http:// or https://")
		}
		settings.GenerationURL = u
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Settings = settings
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
