// Package metrics holds the Prometheus collectors for schedule resolution,
// playback and content generation.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reeltok/reeltok/internal/models"
)

const namespace = "reeltok"

// Generation outcomes used as the outcome label.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

var (
	resolutionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "schedule",
		Name:      "resolutions_total",
		Help:      "Number of schedule resolutions grouped by category and whether the fallback applied.",
	}, []string{"category", "fallback"})

	currentSlotGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "schedule",
		Name:      "current_slot_start_minutes",
		Help:      "Start of the most recently resolved slot in minutes after midnight, or -1 for the fallback.",
	})

	transitionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "playback",
		Name:      "transitions_total",
		Help:      "Number of activity changes observed by the playback watcher.",
	})

	generationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "Number of content generation requests grouped by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(resolutionsCounter, currentSlotGauge, transitionsCounter, generationCounter)
}

// RecordResolution counts a resolution and updates the current slot gauge.
func RecordResolution(res models.Resolution) {
	resolutionsCounter.WithLabelValues(string(res.Category), strconv.FormatBool(res.Fallback)).Inc()
	if res.Slot == nil {
		currentSlotGauge.Set(-1)
		return
	}
	currentSlotGauge.Set(float64(res.Slot.Start.Minutes()))
}

// RecordTransition counts an activity change.
func RecordTransition() {
	transitionsCounter.Inc()
}

// RecordGeneration counts a generation request by outcome.
func RecordGeneration(outcome string) {
	generationCounter.WithLabelValues(outcome).Inc()
}
