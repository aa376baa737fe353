// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MCMartinLee/FindTime/internal/model"
	"github.com/MCMartinLee/FindTime/internal/repository"
	"github.com/MCMartinLee/FindTime/internal/service"
	"github.com/MCMartinLee/FindTime/internal/timeutil"
	"github.com/go-chi/chi/v5"
)

// EventHandler holds all HTTP handlers for the scheduling API.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// isValidationError reports whether err is bad user input rather than a
// system fault. Validation errors render inline and are never logged.
func isValidationError(err error) bool {
	return errors.Is(err, model.ErrEmptyTitle) ||
		errors.Is(err, model.ErrNoValidSlots) ||
		errors.Is(err, model.ErrEmptyName) ||
		errors.Is(err, model.ErrNoSelection)
}

// writeServiceError maps a service error onto the HTTP surface: validation →
// 400, missing event → 404, anything else is a store failure → 502 with the
// underlying message appended so the user has something actionable. Store
// failures are never retried here; the user retries via refresh or resubmit.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	default:
		writeError(w, http.StatusBadGateway, "store unavailable: "+err.Error())
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
// Creates an event from a title, display timezone, and raw local slot inputs.
// The created event's id is the opaque share identifier.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /events/{id}
// Returns the event, its responses, and freshly recomputed ranked tallies.
// This is also the "refresh" action: there is no cache to invalidate, every
// call re-fetches and re-aggregates. An optional ?tz= query overrides the
// event's display timezone for the slot labels only.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.svc.LoadEvent(r.Context(), id, r.URL.Query().Get("tz"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SubmitResponse handles POST /events/{id}/responses
// Records one availability submission. Submissions are append-only vote
// records: the same name may submit again and both count.
func (h *EventHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.SubmitResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.SubmitResponse(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"timezone": timeutil.DetectLocalZone(),
	})
}
