package handler

import (
	"log/slog"
	"net/http"

	"github.com/harbourview/aptly/internal/usecase"
)

// SafetyHandler serves tenant-scoped safety alert endpoints.
type SafetyHandler struct {
	alerts *usecase.SafetyAlertService
	logger *slog.Logger
}

// NewSafetyHandler creates a new SafetyHandler.
func NewSafetyHandler(alerts *usecase.SafetyAlertService, logger *slog.Logger) *SafetyHandler {
	return &SafetyHandler{alerts: alerts, logger: logger}
}

type createAlertRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create persists and broadcasts a safety alert (manager action).
func (h *SafetyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	var req createAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	alert, err := h.alerts.Create(r.Context(), claims.Apartment, claims.UserID, req.Title, req.Description)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, alert)
}

// List returns the apartment's safety alerts.
func (h *SafetyHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	alerts, err := h.alerts.List(r.Context(), claims.Apartment)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}
