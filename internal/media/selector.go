// Package media picks the video and background audio that play for a
// schedule category.
package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/models"
)

// ErrNoMedia is returned when a category has no playable active video.
var ErrNoMedia = errors.New("no media for category")

// Catalog lists stored media assets. storage.Provider satisfies it.
type Catalog interface {
	ListMediaAssets(category *models.Category) ([]models.MediaAsset, error)
}

// Selector chooses media from a Catalog. Selection is deterministic: the
// oldest active asset wins.
type Selector struct {
	catalog Catalog
}

func NewSelector(catalog Catalog) *Selector {
	return &Selector{catalog: catalog}
}

// Select returns the media to play for category. Background audio is only
// chosen for categories that use it; a missing audio track is not an error.
func (s *Selector) Select(ctx context.Context, category models.Category) (models.MediaSelection, error) {
	if err := ctx.Err(); err != nil {
		return models.MediaSelection{}, err
	}
	if !category.Valid() {
		return models.MediaSelection{}, fmt.Errorf("invalid category %q", category)
	}

	assets, err := s.catalog.ListMediaAssets(&category)
	if err != nil {
		return models.MediaSelection{}, fmt.Errorf("listing %s media: %w", category, err)
	}

	selection := models.MediaSelection{Category: category}
	var (
		foundVideo bool
		audio      *models.MediaAsset
	)
	for i := range assets {
		asset := assets[i]
		if !asset.Active {
			continue
		}
		if !foundVideo && asset.HasVideo() {
			selection.Video = asset
			foundVideo = true
		}
		if audio == nil && asset.HasAudio() {
			audio = &asset
		}
	}

	if !foundVideo {
		return models.MediaSelection{Category: category}, fmt.Errorf("%w %s", ErrNoMedia, category)
	}
	if category.HasBackgroundAudio() {
		selection.Audio = audio
	}

	logger.Debug("Selected media", "category", category, "video", selection.Video.ID, "audio", selection.Audio != nil)
	return selection, nil
}
