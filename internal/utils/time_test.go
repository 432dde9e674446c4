package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
		wantName string
	}{
		{"empty is local", "", false, "Local"},
		{"Local", "Local", false, "Local"},
		{"UTC", "UTC", false, "UTC"},
		{"IANA", "Europe/London", false, "Europe/London"},
		{"invalid", "Invalid/Zone", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc.String() != tt.wantName {
				t.Errorf("LoadLocation(%q) = %s, want %s", tt.timezone, loc, tt.wantName)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("America/New_York") {
		t.Error("America/New_York should be valid")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("Mars/Olympus should be invalid")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	got, err := ParseTimeToMinutes("19:00")
	if err != nil || got != 1140 {
		t.Errorf("ParseTimeToMinutes(19:00) = %d, %v; want 1140", got, err)
	}
	if _, err := ParseTimeToMinutes("7pm"); err == nil {
		t.Error("ParseTimeToMinutes(7pm) should fail")
	}
}

func TestParseInstant(t *testing.T) {
	ref := time.Date(2025, 6, 18, 15, 4, 5, 0, time.UTC)

	got, err := ParseInstant("06:45", ref)
	if err != nil {
		t.Fatalf("ParseInstant(06:45) failed: %v", err)
	}
	if want := time.Date(2025, 6, 18, 6, 45, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseInstant(06:45) = %v, want %v", got, want)
	}

	got, err = ParseInstant("2025-01-02T23:30:00Z", ref)
	if err != nil {
		t.Fatalf("ParseInstant(RFC3339) failed: %v", err)
	}
	if got.Hour() != 23 || got.Minute() != 30 {
		t.Errorf("ParseInstant(RFC3339) = %v", got)
	}

	if _, err := ParseInstant("tomorrow", ref); err == nil {
		t.Error("ParseInstant(tomorrow) should fail")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.config/reeltok/reeltok.db")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if want := filepath.Join(home, ".config/reeltok/reeltok.db"); got != want {
		t.Errorf("ExpandPath = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath should leave absolute paths alone, got %q", got)
	}
}

func TestIsPostgresURL(t *testing.T) {
	if !IsPostgresURL("postgres://u@h/db") || !IsPostgresURL("postgresql://u@h/db") {
		t.Error("expected postgres URLs to be detected")
	}
	if IsPostgresURL("/home/u/reeltok.db") {
		t.Error("file path is not a postgres URL")
	}
}
