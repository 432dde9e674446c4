// Package clock provides the now-provider used for every scheduling
// decision, including a test/debug override that pins "now" to a fixed
// instant.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock. When Location is set, instants are converted
// into it so that time-of-day is taken in the configured timezone.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	now := time.Now()
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// Overridable returns an override instant when one is set and falls back
// to its base clock otherwise. Set and Clear may be called from one
// goroutine while any number of goroutines call Now.
type Overridable struct {
	base     Clock
	override atomic.Pointer[time.Time]
	changes  chan struct{}
}

// NewOverridable wraps base. A nil base uses the system clock.
func NewOverridable(base Clock) *Overridable {
	if base == nil {
		base = System{}
	}
	return &Overridable{
		base:    base,
		changes: make(chan struct{}, 1),
	}
}

func (o *Overridable) Now() time.Time {
	if t := o.override.Load(); t != nil {
		return *t
	}
	return o.base.Now()
}

// Set pins Now to t until Clear is called or Set is called again.
func (o *Overridable) Set(t time.Time) {
	o.override.Store(&t)
	o.notify()
}

// Clear restores the base clock.
func (o *Overridable) Clear() {
	if o.override.Swap(nil) != nil {
		o.notify()
	}
}

// Override returns the override instant, if one is set.
func (o *Overridable) Override() (time.Time, bool) {
	if t := o.override.Load(); t != nil {
		return *t, true
	}
	return time.Time{}, false
}

// Active reports whether an override is in effect.
func (o *Overridable) Active() bool {
	return o.override.Load() != nil
}

// Base returns the wrapped clock, ignoring any override.
func (o *Overridable) Base() Clock {
	return o.base
}

// Changes is signalled after every Set and every effective Clear.
// Signals coalesce: a slow reader sees at most one pending signal.
func (o *Overridable) Changes() <-chan struct{} {
	return o.changes
}

func (o *Overridable) notify() {
	select {
	case o.changes <- struct{}{}:
	default:
	}
}
