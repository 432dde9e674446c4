package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/reeltok/reeltok/internal/constants"
)

// ActivityType is the full set of timetable activity kinds.
type ActivityType string

const (
	ActivityMeditation ActivityType = "meditation"
	ActivityWalking    ActivityType = "walking"
	ActivityMeal       ActivityType = "meal"
	ActivityOther      ActivityType = "other"
)

// ActivityTypes lists every valid ActivityType in display order.
var ActivityTypes = []ActivityType{ActivityMeditation, ActivityWalking, ActivityMeal, ActivityOther}

// Category is the narrower media category used to pick video and audio.
type Category string

const (
	CategoryMeditation Category = "meditation"
	CategoryWalking    Category = "walking"
	CategoryMeal       Category = "meal"
)

// FallbackCategory is used whenever no timetable slot matches.
const FallbackCategory = CategoryMeditation

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryMeditation, CategoryWalking, CategoryMeal}

// ParseActivityType parses a case-insensitive activity type name.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid activity type %q (expected meditation, walking, meal or other)", s)
	}
	return t, nil
}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityMeditation, ActivityWalking, ActivityMeal, ActivityOther:
		return true
	}
	return false
}

// Category maps the activity type to its media category. Slots without
// their own media (wake up, rest) share the meditation media.
func (t ActivityType) Category() Category {
	switch t {
	case ActivityWalking:
		return CategoryWalking
	case ActivityMeal:
		return CategoryMeal
	default:
		return CategoryMeditation
	}
}

// ParseCategory parses a case-insensitive media category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (expected meditation, walking or meal)", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMeditation, CategoryWalking, CategoryMeal:
		return true
	}
	return false
}

// HasBackgroundAudio reports whether media for this category plays a
// separate background audio track alongside the video.
func (c Category) HasBackgroundAudio() bool {
	return c != CategoryMeditation
}

// TimeOfDay is a recurring daily instant with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay returns the time of day for the given hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// TimeOfDayOf extracts the time of day from t, dropping date and seconds.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q (expected HH:MM): %w", s, err)
	}
	return TimeOfDayOf(t), nil
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Valid reports whether t lies within [00:00, 24:00).
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on the date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("time of day %d:%d out of range", t.Hour, t.Minute)
	}
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ActivitySlot is a single timetable entry. Label is display-only.
type ActivitySlot struct {
	ID    string       `json:"id,omitempty" yaml:"id,omitempty"`
	Start TimeOfDay    `json:"start" yaml:"start"`
	Label string       `json:"label" yaml:"label"`
	Type  ActivityType `json:"type" yaml:"type"`
}

// Category returns the media category for the slot's activity type.
func (s ActivitySlot) Category() Category {
	return s.Type.Category()
}

// Resolution is the derived answer to "what is happening at At".
// Slot is nil and Fallback is true when At falls before the first slot.
type Resolution struct {
	At       time.Time     `json:"at"`
	Slot     *ActivitySlot `json:"slot,omitempty"`
	Category Category      `json:"category"`
	Fallback bool          `json:"fallback"`
}

// SameActivity reports whether two resolutions point at the same slot and category.
func (r Resolution) SameActivity(o Resolution) bool {
	if r.Category != o.Category || r.Fallback != o.Fallback {
		return false
	}
	if r.Slot == nil || o.Slot == nil {
		return r.Slot == nil && o.Slot == nil
	}
	return r.Slot.Start == o.Slot.Start && r.Slot.Label == o.Slot.Label && r.Slot.Type == o.Slot.Type
}
