package scheduler

import "github.com/reeltok/reeltok/internal/models"

// defaultTimetable is the reference wellness day. Everything that needs
// the built-in schedule goes through DefaultTimetable.
var defaultTimetable = []models.ActivitySlot{
	{Start: models.NewTimeOfDay(6, 0), Label: "Wake up", Type: models.ActivityOther},
	{Start: models.NewTimeOfDay(6, 30), Label: "Guided meditation", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(7, 15), Label: "Breakfast", Type: models.ActivityMeal},
	{Start: models.NewTimeOfDay(8, 0), Label: "Morning walk", Type: models.ActivityWalking},
	{Start: models.NewTimeOfDay(9, 0), Label: "Focus meditation", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(10, 0), Label: "Mid-morning snack", Type: models.ActivityMeal},
	{Start: models.NewTimeOfDay(10, 30), Label: "Nature walk", Type: models.ActivityWalking},
	{Start: models.NewTimeOfDay(11, 30), Label: "Breathing exercise", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(12, 30), Label: "Lunch", Type: models.ActivityMeal},
	{Start: models.NewTimeOfDay(13, 30), Label: "Mindful walk", Type: models.ActivityWalking},
	{Start: models.NewTimeOfDay(14, 30), Label: "Body scan meditation", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(15, 30), Label: "Afternoon snack", Type: models.ActivityMeal},
	{Start: models.NewTimeOfDay(16, 0), Label: "Evening walk", Type: models.ActivityWalking},
	{Start: models.NewTimeOfDay(17, 0), Label: "Sunset meditation", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(18, 0), Label: "Dinner", Type: models.ActivityMeal},
	{Start: models.NewTimeOfDay(18, 30), Label: "Gratitude reflection", Type: models.ActivityMeditation},
	{Start: models.NewTimeOfDay(19, 0), Label: "Rest", Type: models.ActivityOther},
}

// DefaultTimetable returns a fresh copy of the reference timetable.
func DefaultTimetable() []models.ActivitySlot {
	out := make([]models.ActivitySlot, len(defaultTimetable))
	copy(out, defaultTimetable)
	return out
}

// Default returns a Resolver over the reference timetable.
func Default() *Resolver {
	return MustNew(defaultTimetable)
}
