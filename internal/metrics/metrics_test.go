package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/reeltok/reeltok/internal/models"
)

func TestRecordResolution(t *testing.T) {
	slot := models.ActivitySlot{Start: models.NewTimeOfDay(7, 15), Label: "Breakfast", Type: models.ActivityMeal}
	counter := resolutionsCounter.WithLabelValues("meal", "false")
	before := testutil.ToFloat64(counter)

	RecordResolution(models.Resolution{Slot: &slot, Category: models.CategoryMeal})
	require.Equal(t, before+1, testutil.ToFloat64(counter))
	require.Equal(t, float64(435), testutil.ToFloat64(currentSlotGauge))

	fallback := resolutionsCounter.WithLabelValues("meditation", "true")
	before = testutil.ToFloat64(fallback)
	RecordResolution(models.Resolution{Category: models.CategoryMeditation, Fallback: true})
	require.Equal(t, before+1, testutil.ToFloat64(fallback))
	require.Equal(t, float64(-1), testutil.ToFloat64(currentSlotGauge))
}

func TestRecordTransitionAndGeneration(t *testing.T) {
	before := testutil.ToFloat64(transitionsCounter)
	RecordTransition()
	require.Equal(t, before+1, testutil.ToFloat64(transitionsCounter))

	success := generationCounter.WithLabelValues(OutcomeSuccess)
	before = testutil.ToFloat64(success)
	RecordGeneration(OutcomeSuccess)
	require.Equal(t, before+1, testutil.ToFloat64(success))
}
