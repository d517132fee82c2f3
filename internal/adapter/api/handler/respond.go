package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/usecase"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

// respondError maps a domain error to an HTTP status and a JSON message.
// Infrastructure failures are logged and masked behind a generic message.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var approval *domain.ApprovalError
	var processed *domain.AlreadyProcessedError

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "Your email or password is incorrect"})
	case errors.As(err, &approval):
		respondJSON(w, http.StatusForbidden, errorBody{Message: approval.Error()})
	case errors.As(err, &processed):
		respondJSON(w, http.StatusConflict, errorBody{Message: processed.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Message: "Not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, errorBody{Message: "Already exists"})
	case errors.Is(err, usecase.ErrAlreadyDecided):
		respondJSON(w, http.StatusConflict, errorBody{Message: usecase.ErrAlreadyDecided.Error()})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{Message: "Access denied"})
	case errors.Is(err, usecase.ErrBadApartmentName), errors.Is(err, usecase.ErrBadAction):
		respondJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Message: "Server error"})
	}
}

// badRequest writes a 400 with the given message.
func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Message: message})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
