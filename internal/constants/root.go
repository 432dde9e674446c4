package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "reeltok"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "generation-api-key"
	DefaultConfigPath  = "~/.config/reeltok/reeltok.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MinutesPerDay bounds every time-of-day value: [00:00, 24:00)
	MinutesPerDay = 24 * 60

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "reeltok-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.reeltok.tray"
	TrayExecutablePrefix   = "reeltok-tray"

	// Mux playback URL template for HLS streams
	MuxStreamURLFormat = "https://stream.mux.com/%s.m3u8"

	// Generation service
	GenerationPath           = "/generate"
	GenerationDefaultTimeout = 5 * time.Minute

	// HTTP server defaults
	DefaultServeAddr    = "127.0.0.1:8787"
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 10 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	ServerShutdownGrace = 5 * time.Second
)

// Session States
const (
	StateNow SessionState = iota
	StateTimetable
	StateOverride
)
