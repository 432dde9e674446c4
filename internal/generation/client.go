// Package generation talks to the peaceful-content generation service,
// which renders a video for a vibe and heart rate and hosts it on Mux.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/metrics"
	"github.com/reeltok/reeltok/internal/models"
)

var (
	// ErrInvalidRequest is returned before any network call when the request fails validation.
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrGenerationFailed is returned with the response when the service reports success=false.
	ErrGenerationFailed = errors.New("generation failed")
)

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key as a Bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client calls the generation service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a client. Generation renders video, so the default
// timeout is minutes rather than seconds.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.GenerationDefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate requests a new video. When the service answers success=false the
// decoded response is returned together with ErrGenerationFailed.
func (c *Client) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordGeneration(metrics.OutcomeInvalid)
		return models.GenerationResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.GenerationResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.GenerationPath, bytes.NewReader(body))
	if err != nil {
		return models.GenerationResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	logger.Info("Requesting generation", "url", c.baseURL, "vibe", req.Vibe, "heart_rate", req.HeartRate, "intensity", req.Intensity)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordGeneration(metrics.OutcomeError)
		return models.GenerationResponse{}, fmt.Errorf("calling generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		metrics.RecordGeneration(metrics.OutcomeError)
		return models.GenerationResponse{}, fmt.Errorf("generation service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out models.GenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordGeneration(metrics.OutcomeError)
		return models.GenerationResponse{}, fmt.Errorf("decoding generation response: %w", err)
	}

	logger.Info("Generation finished", "success", out.Success, "status", out.Status, "elapsed", time.Since(start))

	if !out.Success {
		metrics.RecordGeneration(metrics.OutcomeFailed)
		if msg := out.ErrorMessage(); msg != "" {
			return out, fmt.Errorf("%w: %s", ErrGenerationFailed, msg)
		}
		return out, ErrGenerationFailed
	}

	metrics.RecordGeneration(metrics.OutcomeSuccess)
	return out, nil
}

// Health checks that the service answers on its root endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("generation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("generation service unhealthy (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

// ToMediaAsset converts a successful response into a catalog entry.
func ToMediaAsset(resp models.GenerationResponse, category models.Category, title string) (models.MediaAsset, error) {
	asset := models.MediaAsset{
		Category: category,
		Title:    title,
		Active:   true,
	}
	if resp.MuxPlaybackID != nil {
		asset.VideoPlaybackID = *resp.MuxPlaybackID
	}
	if resp.MuxPlaybackURL != nil {
		asset.VideoURL = *resp.MuxPlaybackURL
	}
	if !asset.HasVideo() {
		return models.MediaAsset{}, errors.New("generation response has no playback ID or URL")
	}
	return asset, asset.Validate()
}
