// Package playback re-resolves the schedule on a timer and reports when the
// current activity changes.
package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/metrics"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
)

// MediaSelector picks media for a category. *media.Selector satisfies it.
type MediaSelector interface {
	Select(ctx context.Context, category models.Category) (models.MediaSelection, error)
}

// Notifier delivers a short desktop message. *notifier.Notifier satisfies it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Event describes an activity change. Previous is nil for the first
// resolution. Media is nil when selection failed, and MediaErr says why.
type Event struct {
	Previous *models.Resolution
	Current  models.Resolution
	Next     *models.ActivitySlot
	Media    *models.MediaSelection
	MediaErr error
}

// Title is a one-line description of the current activity.
func (e Event) Title() string {
	if e.Current.Slot == nil {
		return fmt.Sprintf("Now: %s (before the first activity)", e.Current.Category)
	}
	return fmt.Sprintf("Now: %s (%s)", e.Current.Slot.Label, e.Current.Category)
}

// Config wires a Watcher. Selector, Notifier and OnChange are optional.
type Config struct {
	Resolver *scheduler.Resolver
	Clock    *clock.Overridable
	Selector MediaSelector
	Notifier Notifier
	Interval time.Duration
	OnChange func(Event)
}

// Watcher is the periodic caller of the resolver.
type Watcher struct {
	cfg  Config
	mu   sync.Mutex
	last *models.Resolution
}

func NewWatcher(cfg Config) *Watcher {
	if cfg.Clock == nil {
		cfg.Clock = clock.NewOverridable(nil)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Duration(constants.DefaultRefreshIntervalSec) * time.Second
	}
	return &Watcher{cfg: cfg}
}

// Run resolves immediately, then on every tick and on every override
// change, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	logger.Info("Playback watcher started", "interval", w.cfg.Interval)
	w.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Playback watcher stopped")
			return ctx.Err()
		case <-ticker.C:
		case <-w.cfg.Clock.Changes():
			logger.Debug("Clock override changed, re-resolving")
		}
		w.Check(ctx)
	}
}

// Check resolves once. It returns the event and true when the activity
// differs from the previous check.
func (w *Watcher) Check(ctx context.Context) (Event, bool) {
	now := w.cfg.Clock.Now()
	current := w.cfg.Resolver.Resolve(now)
	metrics.RecordResolution(current)

	w.mu.Lock()
	previous := w.last
	changed := previous == nil || !previous.SameActivity(current)
	if changed {
		stored := current
		w.last = &stored
	}
	w.mu.Unlock()

	if !changed {
		return Event{}, false
	}

	log := logger.With("category", current.Category, "at", now.Format(constants.TimeFormat))
	event := Event{Previous: previous, Current: current}
	if next, ok := w.cfg.Resolver.Next(now); ok {
		event.Next = &next
	}
	if w.cfg.Selector != nil {
		selection, err := w.cfg.Selector.Select(ctx, current.Category)
		if err != nil {
			event.MediaErr = err
			log.Warn("Media selection failed", "error", err)
		} else {
			event.Media = &selection
		}
	}

	if previous != nil {
		metrics.RecordTransition()
	}
	log.Info("Activity changed", "fallback", current.Fallback)

	if w.cfg.Notifier != nil {
		if err := w.cfg.Notifier.Notify(ctx, event.Title()); err != nil {
			log.Warn("Notification failed", "error", err)
		}
	}
	if w.cfg.OnChange != nil {
		w.cfg.OnChange(event)
	}
	return event, true
}

// Last returns the most recent resolution, if any.
func (w *Watcher) Last() (models.Resolution, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return models.Resolution{}, false
	}
	return *w.last, true
}
