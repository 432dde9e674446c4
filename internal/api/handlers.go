// Package api exposes the read-mostly JSON API used by the mobile app.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/media"
	"github.com/reeltok/reeltok/internal/metrics"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
	"github.com/reeltok/reeltok/internal/utils"
)

// MediaSelector picks media for a category.
type MediaSelector interface {
	Select(ctx context.Context, category models.Category) (models.MediaSelection, error)
}

// OverrideStore persists the debug clock override.
type OverrideStore interface {
	SetClockOverride(time.Time) error
	ClearClockOverride() error
}

// Handler coordinates HTTP requests with the resolver.
type Handler struct {
	resolver  *scheduler.Resolver
	clock     *clock.Overridable
	selector  MediaSelector
	overrides OverrideStore
}

// NewHandler builds a Handler. selector and overrides may be nil.
func NewHandler(resolver *scheduler.Resolver, clk *clock.Overridable, selector MediaSelector, overrides OverrideStore) *Handler {
	return &Handler{
		resolver:  resolver,
		clock:     clk,
		selector:  selector,
		overrides: overrides,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/now", h.now)
	mux.HandleFunc("/v1/timetable", h.timetable)
	mux.HandleFunc("/v1/clock", h.clockOverride)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) now(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	instant := h.clock.Now()
	raw := r.URL.Query().Get("at")
	if raw != "" {
		parsed, err := utils.ParseInstant(raw, instant)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		instant = parsed
	}

	res := h.resolver.Resolve(instant)
	metrics.RecordResolution(res)

	resp := NowResponse{
		Resolution: res,
		Override:   raw == "" && h.clock.Active(),
	}
	if next, ok := h.resolver.Next(instant); ok {
		resp.Next = &next
	}
	if h.selector != nil {
		selection, err := h.selector.Select(r.Context(), res.Category)
		switch {
		case err == nil:
			resp.Media = &selection
		case errors.Is(err, media.ErrNoMedia):
			resp.MediaError = err.Error()
		default:
			logger.Error("Media selection failed", "category", res.Category, "error", err)
			resp.MediaError = "media unavailable"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) timetable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	writeJSON(w, http.StatusOK, TimetableResponse{Slots: h.resolver.Slots()})
}

func (h *Handler) clockOverride(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.clockView())
	case http.MethodPut:
		h.setClock(w, r)
	case http.MethodDelete:
		h.clearClock(w)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

const maxClockBody = 1 << 10

func (h *Handler) setClock(w http.ResponseWriter, r *http.Request) {
	var req SetClockRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxClockBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if req.At == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "at is required")
		return
	}
	at, err := utils.ParseInstant(req.At, h.clock.Base().Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if h.overrides != nil {
		if err := h.overrides.SetClockOverride(at); err != nil {
			logger.Error("Failed to persist clock override", "error", err)
			writeError(w, http.StatusInternalServerError, "server_error", "failed to persist override")
			return
		}
	}
	h.clock.Set(at)
	logger.Info("Clock override set", "at", at)

	writeJSON(w, http.StatusOK, h.clockView())
}

func (h *Handler) clearClock(w http.ResponseWriter) {
	if h.overrides != nil {
		if err := h.overrides.ClearClockOverride(); err != nil {
			logger.Error("Failed to clear persisted clock override", "error", err)
			writeError(w, http.StatusInternalServerError, "server_error", "failed to clear override")
			return
		}
	}
	h.clock.Clear()
	logger.Info("Clock override cleared")

	writeJSON(w, http.StatusOK, h.clockView())
}

func (h *Handler) clockView() ClockResponse {
	view := ClockResponse{Now: h.clock.Now()}
	if t, ok := h.clock.Override(); ok {
		view.Override = &t
	}
	return view
}

// NowResponse is the current activity plus what to play.
type NowResponse struct {
	models.Resolution
	Next       *models.ActivitySlot   `json:"next,omitempty"`
	Media      *models.MediaSelection `json:"media,omitempty"`
	MediaError string                 `json:"media_error,omitempty"`
	Override   bool                   `json:"override"`
}

// TimetableResponse lists the slots the resolver uses.
type TimetableResponse struct {
	Slots []models.ActivitySlot `json:"slots"`
}

// SetClockRequest pins the clock. At is RFC3339 or HH:MM (today).
type SetClockRequest struct {
	At string `json:"at"`
}

// ClockResponse describes the effective clock.
type ClockResponse struct {
	Now      time.Time  `json:"now"`
	Override *time.Time `json:"override,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}
