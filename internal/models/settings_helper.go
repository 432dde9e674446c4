package models

import (
	"fmt"

	"github.com/reeltok/reeltok/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingRefreshIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.RefreshIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing refresh_interval_sec: %w", err)
			}
		case constants.SettingGenerationURL:
			settings.GenerationURL = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingRefreshIntervalSec:   fmt.Sprintf("%d", settings.RefreshIntervalSec),
		constants.SettingGenerationURL:        settings.GenerationURL,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		RefreshIntervalSec:   constants.DefaultRefreshIntervalSec,
		GenerationURL:        constants.DefaultGenerationURL,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.RefreshIntervalSec <= 0 {
		settings.RefreshIntervalSec = constants.DefaultRefreshIntervalSec
	}
	if settings.GenerationURL == "" {
		settings.GenerationURL = constants.DefaultGenerationURL
	}
}
