package handler

import (
	"log/slog"
	"net/http"

	"github.com/harbourview/aptly/internal/usecase"
)

// ListingHandler serves service-provider listing endpoints.
type ListingHandler struct {
	listings *usecase.ListingService
	logger   *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *usecase.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, logger: logger}
}

type createListingRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	AvailableHours string `json:"availableHours"`
}

// Create publishes a listing for the authenticated service provider.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	var req createListingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	listing, err := h.listings.Create(r.Context(), claims.UserID, req.Title, req.Description, req.Location, req.AvailableHours)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

// List returns all published listings; any authenticated user may browse.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}
