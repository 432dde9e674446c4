package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/validation"
)

// ErrInvalidTimetable is returned by New when the slots break a timetable invariant.
var ErrInvalidTimetable = errors.New("invalid timetable")

// Resolver maps instants to the active slot of a fixed daily timetable.
// The timetable is copied on construction and never modified, so a
// Resolver is safe for concurrent use.
type Resolver struct {
	slots []models.ActivitySlot
}

// New builds a Resolver over slots. The slots must be non-empty, start
// within [00:00, 24:00) and be strictly increasing by start time.
func New(slots []models.ActivitySlot) (*Resolver, error) {
	result := validation.ValidateTimetable(slots)
	if result.HasErrors() {
		var msgs []string
		for _, c := range result.Errors() {
			msgs = append(msgs, c.Description)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimetable, strings.Join(msgs, "; "))
	}

	table := make([]models.ActivitySlot, len(slots))
	copy(table, slots)
	return &Resolver{slots: table}, nil
}

// MustNew is like New but panics on an invalid timetable. Use it for
// statically defined tables.
func MustNew(slots []models.ActivitySlot) *Resolver {
	r, err := New(slots)
	if err != nil {
		panic(err)
	}
	return r
}

// Slots returns a copy of the timetable.
func (r *Resolver) Slots() []models.ActivitySlot {
	out := make([]models.ActivitySlot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Len returns the number of slots.
func (r *Resolver) Len() int {
	return len(r.slots)
}

// ResolveActivity returns the slot whose interval [start, nextStart)
// contains the time of day of at; the last slot runs to the end of the
// day. Seconds and the date of at are ignored. The bool is false when at
// falls before the first slot.
func (r *Resolver) ResolveActivity(at time.Time) (models.ActivitySlot, bool) {
	i := r.index(models.TimeOfDayOf(at).Minutes())
	if i < 0 {
		return models.ActivitySlot{}, false
	}
	return r.slots[i], true
}

// Resolve is ResolveActivity plus the media category. Before the first
// slot no slot matches and the category falls back to meditation.
func (r *Resolver) Resolve(at time.Time) models.Resolution {
	res := models.Resolution{At: at}
	slot, ok := r.ResolveActivity(at)
	if !ok {
		res.Category = models.FallbackCategory
		res.Fallback = true
		return res
	}
	res.Slot = &slot
	res.Category = slot.Category()
	return res
}

// Category returns only the media category for at.
func (r *Resolver) Category(at time.Time) models.Category {
	return r.Resolve(at).Category
}

// ResolveNow resolves the instant reported by c.
func (r *Resolver) ResolveNow(c clock.Clock) models.Resolution {
	return r.Resolve(c.Now())
}

// Next returns the first slot starting strictly after the time of day of
// at. The bool is false once the last slot of the day has started.
func (r *Resolver) Next(at time.Time) (models.ActivitySlot, bool) {
	current := models.TimeOfDayOf(at).Minutes()
	for _, slot := range r.slots {
		if slot.Start.Minutes() > current {
			return slot, true
		}
	}
	return models.ActivitySlot{}, false
}

func (r *Resolver) index(current int) int {
	for i, slot := range r.slots {
		start := slot.Start.Minutes()
		if i == len(r.slots)-1 {
			if current >= start {
				return i
			}
			continue
		}
		if start <= current && current < r.slots[i+1].Start.Minutes() {
			return i
		}
	}
	return -1
}
