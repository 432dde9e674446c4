package storage

import (
	"errors"
	"time"

	"github.com/reeltok/reeltok/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when init has never run.
	ErrNotInitialized = errors.New("storage not initialized, run 'reeltok init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Timetable
	// GetTimetable returns the stored slots ordered by start time.
	GetTimetable() ([]models.ActivitySlot, error)
	// ReplaceTimetable swaps the whole timetable in a single transaction.
	// Slots without an ID are assigned one.
	ReplaceTimetable([]models.ActivitySlot) error

	// Clock override
	// GetClockOverride returns nil when no override is stored.
	GetClockOverride() (*time.Time, error)
	SetClockOverride(time.Time) error
	ClearClockOverride() error

	// Media
	AddMediaAsset(models.MediaAsset) error
	GetMediaAsset(id string) (models.MediaAsset, error)
	// ListMediaAssets returns assets ordered by creation time. A nil
	// category lists every asset.
	ListMediaAssets(category *models.Category) ([]models.MediaAsset, error)
	DeleteMediaAsset(id string) error

	// Utils
	GetConfigPath() string
}
