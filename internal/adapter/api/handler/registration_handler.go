package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/adapter/api/middleware"
	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/usecase"
)

// RegistrationHandler serves identity registration and approval endpoints.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
	logger       *slog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registration *usecase.RegistrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, logger: logger}
}

type registerResidentRequest struct {
	Name                 string `json:"name"`
	NIC                  string `json:"nic"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	Phone                string `json:"phone"`
	ApartmentComplexName string `json:"apartmentComplexName"`
	ApartmentCode        string `json:"apartmentCode"`
}

// RegisterResident creates a pending resident in the named apartment.
func (h *RegistrationHandler) RegisterResident(w http.ResponseWriter, r *http.Request) {
	var req registerResidentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ApartmentComplexName == "" {
		badRequest(w, "Please provide all required fields")
		return
	}

	_, err := h.registration.RegisterResident(r.Context(), usecase.RegisterResidentInput{
		Apartment:     req.ApartmentComplexName,
		Name:          req.Name,
		NIC:           req.NIC,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		ApartmentCode: req.ApartmentCode,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Resident registered successfully"})
}

type registerManagerRequest struct {
	Name          string `json:"name"`
	NIC           string `json:"nic"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ApartmentName string `json:"apartmentName"`
}

// RegisterManager records a pending manager in the central store.
func (h *RegistrationHandler) RegisterManager(w http.ResponseWriter, r *http.Request) {
	var req registerManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ApartmentName == "" {
		badRequest(w, "Please provide all required fields")
		return
	}

	_, err := h.registration.RegisterManager(r.Context(), usecase.RegisterManagerInput{
		ApartmentName: req.ApartmentName,
		Name:          req.Name,
		NIC:           req.NIC,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Manager registered, pending approval"})
}

type registerProviderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
}

// RegisterServiceProvider creates a central-only service provider.
func (h *RegistrationHandler) RegisterServiceProvider(w http.ResponseWriter, r *http.Request) {
	var req registerProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "Please provide all required fields")
		return
	}

	_, err := h.registration.RegisterServiceProvider(r.Context(), usecase.RegisterServiceProviderInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Service provider registered successfully"})
}

type approveManagerRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// ApproveManager approves or rejects a pending central manager. Approval
// promotes the manager into their apartment's tenant store.
func (h *RegistrationHandler) ApproveManager(w http.ResponseWriter, r *http.Request) {
	var req approveManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		badRequest(w, "Invalid manager id")
		return
	}

	switch req.Action {
	case "", "approve":
		err = h.registration.ApproveManager(r.Context(), id)
	case "reject":
		err = h.registration.RejectManager(r.Context(), id)
	default:
		badRequest(w, `action must be "approve" or "reject"`)
		return
	}
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Manager application processed"})
}

type residentStatusRequest struct {
	Action string `json:"action"`
}

// SetResidentStatus lets a manager approve or reject a pending resident in
// their own apartment.
func (h *RegistrationHandler) SetResidentStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "No token, authorization failed"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "Invalid resident id")
		return
	}

	var req residentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	var status domain.ApprovalStatus
	switch req.Action {
	case "approve":
		status = domain.StatusApproved
	case "reject":
		status = domain.StatusRejected
	default:
		badRequest(w, `action must be "approve" or "reject"`)
		return
	}

	if err := h.registration.SetResidentStatus(r.Context(), claims.Apartment, id, status); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Resident status updated"})
}
