package validation

import (
	"fmt"
	"strings"

	"github.com/reeltok/reeltok/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyTimetable      ConflictType = "empty_timetable"
	ConflictInvalidTime         ConflictType = "invalid_time"
	ConflictUnorderedSlots      ConflictType = "unordered_slots"
	ConflictDuplicateStart      ConflictType = "duplicate_start"
	ConflictInvalidActivityType ConflictType = "invalid_activity_type"
	ConflictMissingLabel        ConflictType = "missing_label"
)

// Severity decides whether a conflict blocks timetable construction.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in a timetable
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Index       int    // position of the offending slot, -1 for whole-table conflicts
	Start       string // HH:MM of the offending slot (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict blocks construction
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the blocking conflicts
func (vr *ValidationResult) Errors() []Conflict {
	var errs []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			errs = append(errs, c)
		}
	}
	return errs
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return b.String()
}

// ValidateTimetable checks an ordered list of slots against the timetable
// invariants: non-empty, every start within [00:00, 24:00), strictly
// increasing start times and a known activity type per slot.
func ValidateTimetable(slots []models.ActivitySlot) ValidationResult {
	var result ValidationResult

	if len(slots) == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmptyTimetable,
			Severity:    SeverityError,
			Description: "timetable has no slots",
			Index:       -1,
		})
		return result
	}

	for i, slot := range slots {
		if !slot.Start.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Severity:    SeverityError,
				Description: fmt.Sprintf("slot %d (%q) starts at %02d:%02d, outside 00:00-23:59", i+1, slot.Label, slot.Start.Hour, slot.Start.Minute),
				Index:       i,
			})
		}

		if !slot.Type.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidActivityType,
				Severity:    SeverityError,
				Description: fmt.Sprintf("slot %d (%q) has unknown activity type %q", i+1, slot.Label, slot.Type),
				Index:       i,
				Start:       slot.Start.String(),
			})
		}

		if strings.TrimSpace(slot.Label) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingLabel,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("slot %d at %s has no label", i+1, slot.Start),
				Index:       i,
				Start:       slot.Start.String(),
			})
		}

		if i == 0 {
			continue
		}
		prev := slots[i-1]
		switch {
		case slot.Start.Minutes() == prev.Start.Minutes():
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateStart,
				Severity:    SeverityError,
				Description: fmt.Sprintf("slots %d and %d both start at %s", i, i+1, slot.Start),
				Index:       i,
				Start:       slot.Start.String(),
			})
		case slot.Start.Before(prev.Start):
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnorderedSlots,
				Severity:    SeverityError,
				Description: fmt.Sprintf("slot %d (%s) starts before slot %d (%s)", i+1, slot.Start, i, prev.Start),
				Index:       i,
				Start:       slot.Start.String(),
			})
		}
	}

	return result
}
