package models

import (
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/constants"
)

type MediaAsset struct {
	ID              string    `json:"id"`
	Category        Category  `json:"category"`
	Title           string    `json:"title"`
	VideoPlaybackID string    `json:"video_playback_id,omitempty"` // Mux playback ID
	VideoURL        string    `json:"video_url,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// StreamURL returns the playable video URL, deriving the Mux HLS URL
// from the playback ID when no explicit URL is stored.
func (a MediaAsset) StreamURL() string {
	if a.VideoURL != "" {
		return a.VideoURL
	}
	if a.VideoPlaybackID != "" {
		return fmt.Sprintf(constants.MuxStreamURLFormat, a.VideoPlaybackID)
	}
	return ""
}

func (a MediaAsset) HasVideo() bool {
	return a.StreamURL() != ""
}

func (a MediaAsset) HasAudio() bool {
	return a.AudioURL != ""
}

func (a *MediaAsset) Validate() error {
	if !a.Category.Valid() {
		return fmt.Errorf("invalid media category %q", a.Category)
	}
	if a.Title == "" {
		return fmt.Errorf("media title cannot be empty")
	}
	if !a.HasVideo() && !a.HasAudio() {
		return fmt.Errorf("media asset needs a video playback ID, video URL or audio URL")
	}
	return nil
}

// MediaSelection is what plays for a category. Audio is nil for meditation.
type MediaSelection struct {
	Category Category    `json:"category"`
	Video    MediaAsset  `json:"video"`
	Audio    *MediaAsset `json:"audio,omitempty"`
}
