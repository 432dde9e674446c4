package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// GenerationRequest is the body sent to the peaceful-content generation service.
type GenerationRequest struct {
	Vibe      string  `json:"vibe"`
	HeartRate int     `json:"heart_rate"`
	Intensity float64 `json:"intensity"` // 0..1
}

func (r GenerationRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Vibe) == "" {
		errs = append(errs, fmt.Errorf("vibe cannot be empty"))
	}
	if r.HeartRate <= 0 || r.HeartRate >= 300 {
		errs = append(errs, fmt.Errorf("heart rate %d out of range (1-299 bpm)", r.HeartRate))
	}
	if math.IsNaN(r.Intensity) || r.Intensity < 0 || r.Intensity > 1 {
		errs = append(errs, fmt.Errorf("intensity %.2f out of range (0-1)", r.Intensity))
	}
	return errors.Join(errs...)
}

// GenerationResponse mirrors the generation service's JSON reply.
type GenerationResponse struct {
	Success              bool    `json:"success"`
	MuxPlaybackID        *string `json:"mux_playback_id"`
	MuxPlaybackURL       *string `json:"mux_playback_url"`
	Status               string  `json:"status"`
	ExecutionTimeSeconds float64 `json:"execution_time_seconds"`
	Error                *string `json:"error"`
}

// ErrorMessage returns the service-reported error, or "" when none.
func (r GenerationResponse) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
