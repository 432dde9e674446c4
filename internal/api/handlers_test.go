package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/media"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
)

var base = time.Date(2025, time.May, 10, 6, 45, 0, 0, time.UTC)

type stubSelector struct{}

func (stubSelector) Select(ctx context.Context, category models.Category) (models.MediaSelection, error) {
	if category == models.CategoryMeal {
		return models.MediaSelection{}, fmt.Errorf("%w %s", media.ErrNoMedia, category)
	}
	return models.MediaSelection{Category: category, Video: models.MediaAsset{ID: "v-" + string(category)}}, nil
}

type memoryOverrides struct {
	at      *time.Time
	failing bool
}

func (m *memoryOverrides) SetClockOverride(t time.Time) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.at = &t
	return nil
}

func (m *memoryOverrides) ClearClockOverride() error {
	if m.failing {
		return errors.New("disk full")
	}
	m.at = nil
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *clock.Overridable, *memoryOverrides) {
	t.Helper()
	clk := clock.NewOverridable(clock.Fixed(base))
	store := &memoryOverrides{}
	handler := NewHandler(scheduler.Default(), clk, stubSelector{}, store)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, clk, store
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func doJSON(t *testing.T, method, url, body string, out interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestNow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var resp NowResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now", &resp))
	require.NotNil(t, resp.Slot)
	assert.Equal(t, "Guided meditation", resp.Slot.Label)
	assert.Equal(t, models.CategoryMeditation, resp.Category)
	assert.False(t, resp.Fallback)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "Breakfast", resp.Next.Label)
	require.NotNil(t, resp.Media)
	assert.Equal(t, "v-meditation", resp.Media.Video.ID)
	assert.False(t, resp.Override)
}

func TestNow_AtQuery(t *testing.T) {
	srv, _, _ := newTestServer(t)

	tests := []struct {
		at       string
		label    string
		category models.Category
		fallback bool
	}{
		{at: "07:15", label: "Breakfast", category: models.CategoryMeal},
		{at: "07:14", label: "Guided meditation", category: models.CategoryMeditation},
		{at: "08:00", label: "Morning walk", category: models.CategoryWalking},
		{at: "23:30", label: "Rest", category: models.CategoryMeditation},
		{at: "03:00", category: models.CategoryMeditation, fallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			var resp NowResponse
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now?at="+tt.at, &resp))
			assert.Equal(t, tt.category, resp.Category)
			assert.Equal(t, tt.fallback, resp.Fallback)
			if tt.fallback {
				assert.Nil(t, resp.Slot)
				return
			}
			require.NotNil(t, resp.Slot)
			assert.Equal(t, tt.label, resp.Slot.Label)
		})
	}
}

func TestNow_MissingMediaIsNotAnError(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var resp NowResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now?at=12:45", &resp))
	assert.Equal(t, models.CategoryMeal, resp.Category)
	assert.Nil(t, resp.Media)
	assert.Contains(t, resp.MediaError, "no media")
}

func TestNow_BadRequests(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var body map[string]string
	require.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/now?at=25:00", &body))
	assert.Equal(t, "invalid_request", body["type"])

	require.Equal(t, http.StatusMethodNotAllowed, doJSON(t, http.MethodPost, srv.URL+"/v1/now", "", nil))
}

func TestTimetable(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var resp TimetableResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/timetable", &resp))
	require.Len(t, resp.Slots, len(scheduler.DefaultTimetable()))
	assert.Equal(t, "06:00", resp.Slots[0].Start.String())
	assert.Equal(t, "Rest", resp.Slots[len(resp.Slots)-1].Label)
}

func TestClockOverride(t *testing.T) {
	srv, clk, store := newTestServer(t)

	var view ClockResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{"at":"2025-05-10T07:15:00Z"}`, &view))
	require.NotNil(t, view.Override)
	assert.True(t, clk.Active())
	require.NotNil(t, store.at)
	assert.True(t, store.at.Equal(time.Date(2025, 5, 10, 7, 15, 0, 0, time.UTC)))

	var now NowResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now", &now))
	assert.True(t, now.Override)
	require.NotNil(t, now.Slot)
	assert.Equal(t, "Breakfast", now.Slot.Label)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now?at=08:00", &now))
	assert.False(t, now.Override, "an explicit at ignores the override")
	assert.Equal(t, "Morning walk", now.Slot.Label)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{"at":"18:10"}`, &view))
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/now", &now))
	assert.Equal(t, "Dinner", now.Slot.Label)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodDelete, srv.URL+"/v1/clock", "", &view))
	assert.Nil(t, view.Override)
	assert.False(t, clk.Active())
	assert.Nil(t, store.at)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/clock", &view))
	assert.True(t, view.Now.Equal(base))
}

func TestClockOverride_Errors(t *testing.T) {
	srv, clk, store := newTestServer(t)

	require.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{`, nil))
	require.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{}`, nil))
	require.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{"at":"noon"}`, nil))

	padded := strings.Repeat(" ", 2048) + `{"at":"09:00"}`
	require.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", padded, nil))
	assert.False(t, clk.Active(), "oversized bodies must be rejected")

	store.failing = true
	require.Equal(t, http.StatusInternalServerError, doJSON(t, http.MethodPut, srv.URL+"/v1/clock", `{"at":"09:00"}`, nil))
	assert.False(t, clk.Active(), "override must not apply when persisting fails")

	require.Equal(t, http.StatusMethodNotAllowed, doJSON(t, http.MethodPost, srv.URL+"/v1/clock", `{}`, nil))
}

func TestHealthzAndMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Resolve once so the counter has a sample
	getJSON(t, srv.URL+"/v1/now", &NowResponse{})

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reeltok_schedule_resolutions_total")
}
