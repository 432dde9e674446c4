package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestActivityTypeCategory(t *testing.T) {
	tests := []struct {
		typ  ActivityType
		want Category
	}{
		{ActivityMeditation, CategoryMeditation},
		{ActivityWalking, CategoryWalking},
		{ActivityMeal, CategoryMeal},
		{ActivityOther, CategoryMeditation},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := tt.typ.Category(); got != tt.want {
					t.Errorf("%s.Category() = %s, want %s", tt.typ, got, tt.want)
				}
			}
		})
	}
}

func TestActivityTypeCategoryIsTotal(t *testing.T) {
	for _, typ := range ActivityTypes {
		if !typ.Category().Valid() {
			t.Errorf("%s maps to invalid category %q", typ, typ.Category())
		}
	}
}

func TestParseActivityType(t *testing.T) {
	got, err := ParseActivityType("  Walking ")
	if err != nil || got != ActivityWalking {
		t.Errorf("ParseActivityType(Walking) = %q, %v", got, err)
	}
	if _, err := ParseActivityType("yoga"); err == nil {
		t.Error("ParseActivityType(yoga) should fail")
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("MEAL")
	if err != nil || got != CategoryMeal {
		t.Errorf("ParseCategory(MEAL) = %q, %v", got, err)
	}
	if _, err := ParseCategory("other"); err == nil {
		t.Error("ParseCategory(other) should fail: other is not a media category")
	}
}

func TestCategoryHasBackgroundAudio(t *testing.T) {
	if CategoryMeditation.HasBackgroundAudio() {
		t.Error("meditation should not use background audio")
	}
	if !CategoryWalking.HasBackgroundAudio() || !CategoryMeal.HasBackgroundAudio() {
		t.Error("walking and meal should use background audio")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"06:30", NewTimeOfDay(6, 30), false},
		{"00:00", NewTimeOfDay(0, 0), false},
		{"23:59", NewTimeOfDay(23, 59), false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayHelpers(t *testing.T) {
	tod := NewTimeOfDay(7, 15)
	if tod.Minutes() != 435 {
		t.Errorf("Minutes() = %d, want 435", tod.Minutes())
	}
	if tod.String() != "07:15" {
		t.Errorf("String() = %q, want 07:15", tod.String())
	}
	if !NewTimeOfDay(6, 30).Before(tod) {
		t.Error("06:30 should be before 07:15")
	}

	day := time.Date(2025, 5, 1, 22, 10, 33, 0, time.UTC)
	if got := tod.On(day); !got.Equal(time.Date(2025, 5, 1, 7, 15, 0, 0, time.UTC)) {
		t.Errorf("On() = %v", got)
	}
	if got := TimeOfDayOf(day); got != NewTimeOfDay(22, 10) {
		t.Errorf("TimeOfDayOf() = %v, want 22:10", got)
	}
}

func TestActivitySlotJSON(t *testing.T) {
	slot := ActivitySlot{Start: NewTimeOfDay(6, 30), Label: "Guided meditation", Type: ActivityMeditation}

	data, err := json.Marshal(slot)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"start":"06:30","label":"Guided meditation","type":"meditation"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded ActivitySlot
	if err := json.Unmarshal([]byte(`{"start":"25:00","label":"x","type":"other"}`), &decoded); err == nil {
		t.Error("Unmarshal should reject 25:00")
	}
}

func TestResolutionSameActivity(t *testing.T) {
	a := ActivitySlot{Start: NewTimeOfDay(6, 30), Label: "Guided meditation", Type: ActivityMeditation}
	b := ActivitySlot{Start: NewTimeOfDay(7, 15), Label: "Breakfast", Type: ActivityMeal}

	r1 := Resolution{Slot: &a, Category: CategoryMeditation}
	r2 := Resolution{Slot: &a, Category: CategoryMeditation, At: time.Now()}
	r3 := Resolution{Slot: &b, Category: CategoryMeal}
	fallback := Resolution{Category: CategoryMeditation, Fallback: true}

	if !r1.SameActivity(r2) {
		t.Error("same slot at different instants should be the same activity")
	}
	if r1.SameActivity(r3) {
		t.Error("different slots should differ")
	}
	if r1.SameActivity(fallback) || !fallback.SameActivity(fallback) {
		t.Error("fallback comparison is wrong")
	}
}
