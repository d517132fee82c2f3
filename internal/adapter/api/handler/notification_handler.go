package handler

import (
	"log/slog"
	"net/http"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/usecase"
)

// NotificationHandler serves tenant-scoped notification endpoints.
type NotificationHandler struct {
	notifications *usecase.NotificationService
	logger        *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *usecase.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

type createNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (h *NotificationHandler) create(kind domain.NotificationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := identityOr401(w, r)
		if !ok {
			return
		}

		var req createNotificationRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}
		if req.Title == "" {
			badRequest(w, "title is required")
			return
		}

		notification, err := h.notifications.Create(r.Context(), claims.Apartment, kind, claims.UserID, "", req.Title, req.Message)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, notification)
	}
}

// CreateManagement posts a management notification (manager action).
func (h *NotificationHandler) CreateManagement(w http.ResponseWriter, r *http.Request) {
	h.create(domain.NotificationManagement)(w, r)
}

// CreateCommunity posts a community notification (resident action).
func (h *NotificationHandler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	h.create(domain.NotificationCommunity)(w, r)
}

func (h *NotificationHandler) list(kind domain.NotificationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := identityOr401(w, r)
		if !ok {
			return
		}

		notifications, err := h.notifications.List(r.Context(), claims.Apartment, kind, claims.UserID)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, notifications)
	}
}

// ListManagement lists management notifications.
func (h *NotificationHandler) ListManagement(w http.ResponseWriter, r *http.Request) {
	h.list(domain.NotificationManagement)(w, r)
}

// ListCommunity lists community notifications the viewer has not dismissed.
func (h *NotificationHandler) ListCommunity(w http.ResponseWriter, r *http.Request) {
	h.list(domain.NotificationCommunity)(w, r)
}

// Delete removes a notification for everyone: managers may delete any,
// residents only their own posts.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.notifications.Delete(r.Context(), claims.Apartment, id, claims.UserID, claims.Role); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification removed"})
}

// Dismiss hides a community notification from the requesting user only
// (swipe-away in the client).
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	claims, ok := identityOr401(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.notifications.Dismiss(r.Context(), claims.Apartment, id, claims.UserID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification dismissed"})
}
