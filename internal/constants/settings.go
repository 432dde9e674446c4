package constants

const (
	SettingTimezone             = "timezone"
	SettingRefreshIntervalSec   = "refresh_interval_sec"
	SettingGenerationURL        = "generation_url"
	SettingNotificationsEnabled = "notifications_enabled"

	// SettingClockOverride holds the debug override instant (RFC3339); absent when cleared.
	SettingClockOverride = "clock_override"

	DefaultTimezone             = "Local"
	DefaultRefreshIntervalSec   = 60
	DefaultGenerationURL        = "http://127.0.0.1:8000"
	DefaultNotificationsEnabled = false
)
