package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	tod, err := models.ParseTimeOfDay(timeStr)
	if err != nil {
		return 0, err
	}
	return tod.Minutes(), nil
}

// ParseInstant parses a user supplied instant. It accepts RFC3339, or a
// bare HH:MM which is placed on the date of ref in ref's location.
func ParseInstant(s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(ref.Location()), nil
	}
	tod, err := models.ParseTimeOfDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q (expected HH:MM or RFC3339)", s)
	}
	return tod.On(ref), nil
}

// FormatClock renders t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgresURL reports whether the config value names a PostgreSQL database.
func IsPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
