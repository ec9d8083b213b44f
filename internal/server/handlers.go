// Package server exposes the application service over HTTP.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/moneymornings/intake/internal/metrics"
	"github.com/moneymornings/intake/internal/models"
	"github.com/moneymornings/intake/internal/service"
)

// ApplicationHandler serves the application intake endpoints.
type ApplicationHandler struct {
	svc *service.ApplicationService
}

// NewApplicationHandler creates a handler backed by the given service.
func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Root handles GET /api/
func (h *ApplicationHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Money Mornings Intake API - Ready!",
	})
}

// Health handles GET /health. It touches no storage.
func (h *ApplicationHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Submit handles POST /api/applications
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	app, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.ApplicationsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, models.SubmitResponse{
		ID:     app.ID,
		Status: "success",
	})
}

// List handles GET /api/applications?status=&limit=&offset=
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := service.ListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  service.DefaultListLimit,
	}

	var err error
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if opts.Limit, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if opts.Offset, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
	}

	apps, err := h.svc.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// Get handles GET /api/applications/{id}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Update handles PATCH /api/applications/{id}
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.Patch
	if err := parseJSONBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	app, err := h.svc.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Stats handles GET /api/applications/stats
func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
