package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/validation"
)

// PrepareTimetable validates slots and fills in missing IDs. The input
// slice is not modified.
func PrepareTimetable(slots []models.ActivitySlot) ([]models.ActivitySlot, error) {
	result := validation.ValidateTimetable(slots)
	if result.HasErrors() {
		return nil, fmt.Errorf("refusing to store invalid timetable:\n%s", result.FormatReport())
	}

	out := make([]models.ActivitySlot, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		out[i] = slot
	}
	return out, nil
}

// PrepareMediaAsset validates an asset and fills in its ID and creation time.
func PrepareMediaAsset(asset models.MediaAsset) (models.MediaAsset, error) {
	if err := asset.Validate(); err != nil {
		return models.MediaAsset{}, err
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}
	asset.CreatedAt = asset.CreatedAt.UTC()
	return asset, nil
}

// TimestampLayout is a fixed-width UTC layout, so stored timestamps sort
// lexically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// EncodeClockOverride formats an override for the settings table.
func EncodeClockOverride(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// DecodeClockOverride parses a stored override. An empty value means none.
func DecodeClockOverride(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("parsing stored clock override %q: %w", value, err)
	}
	return &t, nil
}
