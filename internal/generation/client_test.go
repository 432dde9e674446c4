package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltok/reeltok/internal/models"
)

func strPtr(s string) *string { return &s }

func validRequest() models.GenerationRequest {
	return models.GenerationRequest{Vibe: "calm ocean", HeartRate: 62, Intensity: 0.3}
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.GenerationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, validRequest(), body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"mux_playback_id":"abc123","mux_playback_url":"https://stream.mux.com/abc123.m3u8","status":"ready","execution_time_seconds":41.5,"error":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", WithAPIKey("secret-key"))
	resp, err := client.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.MuxPlaybackID)
	assert.Equal(t, "abc123", *resp.MuxPlaybackID)
	assert.Equal(t, "ready", resp.Status)
	assert.InDelta(t, 41.5, resp.ExecutionTimeSeconds, 0.001)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"mux_playback_id":"x","status":"ready"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Generate(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Generate(context.Background(), models.GenerationRequest{HeartRate: 0, Intensity: 2})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "vibe")
	assert.False(t, called, "invalid requests must not reach the service")
}

func TestGenerate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream renderer down\n"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream renderer down")
}

func TestGenerate_ServiceReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"status":"failed","error":"GPU quota exceeded"}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Generate(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "GPU quota exceeded")
	assert.Equal(t, "failed", resp.Status)
}

func TestGenerate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestHealth(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Health(context.Background()))

	healthy = false
	require.Error(t, client.Health(context.Background()))
}

func TestToMediaAsset(t *testing.T) {
	asset, err := ToMediaAsset(models.GenerationResponse{Success: true, MuxPlaybackID: strPtr("pb1")}, models.CategoryWalking, "Generated walk")
	require.NoError(t, err)
	assert.Equal(t, "pb1", asset.VideoPlaybackID)
	assert.True(t, asset.Active)
	assert.Equal(t, "https://stream.mux.com/pb1.m3u8", asset.StreamURL())

	_, err = ToMediaAsset(models.GenerationResponse{Success: true}, models.CategoryWalking, "Empty")
	require.Error(t, err)
}
