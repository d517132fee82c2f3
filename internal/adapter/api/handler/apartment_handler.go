package handler

import (
	"log/slog"
	"net/http"

	"github.com/harbourview/aptly/internal/usecase"
)

// ApartmentHandler serves the apartment registry endpoints.
type ApartmentHandler struct {
	apartments *usecase.ApartmentService
	logger     *slog.Logger
}

// NewApartmentHandler creates a new ApartmentHandler.
func NewApartmentHandler(apartments *usecase.ApartmentService, logger *slog.Logger) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments, logger: logger}
}

type createApartmentRequest struct {
	ApartmentName string `json:"apartmentName"`
}

// Create registers a new apartment complex and provisions its store.
// Admin-only in a real deployment; the route is deliberately open here.
func (h *ApartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createApartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.ApartmentName == "" {
		badRequest(w, "apartmentName is required")
		return
	}

	apartment, err := h.apartments.Create(r.Context(), req.ApartmentName)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, apartment)
}

// List returns every registered apartment name.
func (h *ApartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.apartments.ListNames(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"apartmentNames": names})
}
