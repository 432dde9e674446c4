package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	RefreshIntervalSec   int    `json:"refresh_interval_sec"`  // how often the watcher re-resolves the current activity
	GenerationURL        string `json:"generation_url"`        // base URL of the peaceful-content generation service
	NotificationsEnabled bool   `json:"notifications_enabled"` // notify the tray companion on activity changes
}
