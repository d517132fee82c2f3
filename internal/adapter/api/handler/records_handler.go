package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/adapter/api/middleware"
	"github.com/harbourview/aptly/internal/usecase"
	"github.com/harbourview/aptly/pkg/util"
)

// RecordsHandler serves the tenant-scoped complaint, resource and
// maintenance endpoints. The tenant always comes from the token.
type RecordsHandler struct {
	complaints  *usecase.ComplaintService
	resources   *usecase.ResourceService
	maintenance *usecase.MaintenanceService
	logger      *slog.Logger
}

// NewRecordsHandler creates a new RecordsHandler.
func NewRecordsHandler(
	complaints *usecase.ComplaintService,
	resources *usecase.ResourceService,
	maintenance *usecase.MaintenanceService,
	logger *slog.Logger,
) *RecordsHandler {
	return &RecordsHandler{
		complaints:  complaints,
		resources:   resources,
		maintenance: maintenance,
		logger:      logger,
	}
}

func identityOr401(w http.ResponseWriter, r *http.Request) (*util.Claims, bool) {
	claims, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "No token, authorization failed"})
		return nil, false
	}
	return claims, true
}

func urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

type createComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateComplaint files a complaint for the authenticated resident.
func (h *RecordsHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	var req createComplaintRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	complaint, err := h.complaints.Create(r.Context(), claims.Apartment, claims.UserID, req.Title, req.Description)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, complaint)
}

// ListComplaints lists the apartment's complaints.
func (h *RecordsHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	complaints, err := h.complaints.List(r.Context(), claims.Apartment)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, complaints)
}

// ResolveComplaint marks a complaint resolved (manager action).
func (h *RecordsHandler) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.complaints.Resolve(r.Context(), claims.Apartment, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Complaint resolved"})
}

type createResourceRequest struct {
	ResourceName string `json:"resourceName"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity"`
}

// CreateResource files a resource request for the authenticated resident.
func (h *RecordsHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	var req createResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.ResourceName == "" || req.Quantity <= 0 {
		badRequest(w, "resourceName and a positive quantity are required")
		return
	}

	request, err := h.resources.Create(r.Context(), claims.Apartment, claims.UserID, req.ResourceName, req.Description, req.Quantity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// ListResources lists active resource requests.
func (h *RecordsHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	requests, err := h.resources.ListActive(r.Context(), claims.Apartment)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// DeleteResource soft-deletes a resource request (owner only).
func (h *RecordsHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.resources.Delete(r.Context(), claims.Apartment, id, claims.UserID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Resource request deleted"})
}

type createMaintenanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateMaintenance files a maintenance request for the authenticated
// resident.
func (h *RecordsHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	var req createMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	request, err := h.maintenance.Create(r.Context(), claims.Apartment, claims.UserID, req.Title, req.Description)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// ListMaintenance lists the apartment's maintenance requests.
func (h *RecordsHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}

	requests, err := h.maintenance.List(r.Context(), claims.Apartment)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// CompleteMaintenance marks a maintenance request done (manager action).
func (h *RecordsHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.maintenance.MarkDone(r.Context(), claims.Apartment, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Maintenance request completed"})
}
