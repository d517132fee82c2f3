package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/adapter/api/middleware"
	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/usecase"
)

// VisitorHandler serves the visitor pass endpoints. The verify and
// update-status routes are unauthenticated: they are reached from a bare
// QR-encoded link before any token exists, with the tenant name carried
// out-of-band on the link itself.
type VisitorHandler struct {
	visitors *usecase.VisitorService
	logger   *slog.Logger
}

// NewVisitorHandler creates a new VisitorHandler.
func NewVisitorHandler(visitors *usecase.VisitorService, logger *slog.Logger) *VisitorHandler {
	return &VisitorHandler{visitors: visitors, logger: logger}
}

type generateQRRequest struct {
	NumOfVisitors int      `json:"numOfVisitors"`
	VisitorNames  []string `json:"visitorNames"`
}

// GenerateQR creates a Pending pass for the authenticated resident and
// returns the payload a client encodes into the QR image.
func (h *VisitorHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "No token, authorization failed"})
		return
	}

	var req generateQRRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.NumOfVisitors <= 0 || len(req.VisitorNames) == 0 {
		badRequest(w, "numOfVisitors and visitorNames are required")
		return
	}

	pass, payload, err := h.visitors.CreatePass(r.Context(), claims.Apartment, claims.UserID, req.NumOfVisitors, req.VisitorNames)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"passId":  pass.ID,
		"qrData":  payload,
	})
}

var verifyPage = template.Must(template.New("verify").Parse(`<!DOCTYPE html>
<html>
<head><title>Visitor Verification</title></head>
<body>
  <h1>Visitor Pass</h1>
  <p>Resident: {{.Pass.ResidentName}} ({{.Pass.ApartmentCode}})</p>
  <p>Visitors ({{.Pass.NumOfVisitors}}): {{.Names}}</p>
  <p>Status: {{.Pass.Status}}</p>
  <form method="POST" action="/api/visitor/update-status?apartment={{.Apartment}}">
    <input type="hidden" name="id" value="{{.Pass.ID}}">
    <button name="action" value="approve">Approve</button>
    <button name="action" value="reject">Reject</button>
  </form>
</body>
</html>
`))

// Verify renders the verification page for a Pending pass. Pure read; the
// browser-facing path answers with HTML fragments instead of JSON.
func (h *VisitorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	apartment := r.URL.Query().Get("apartment")
	if apartment == "" {
		h.renderMessage(w, http.StatusBadRequest, "Missing apartment parameter.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.renderMessage(w, http.StatusBadRequest, "Invalid pass id.")
		return
	}

	pass, err := h.visitors.GetPass(r.Context(), apartment, id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = verifyPage.Execute(w, map[string]any{
		"Pass":      pass,
		"Apartment": apartment,
		"Names":     strings.Join(pass.VisitorNames, ", "),
	})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// UpdateStatus resolves a Pending pass. It accepts either a JSON body with
// the tenant in the X-Apartment header (API clients) or a form post from the
// verification page with the tenant in the query string.
func (h *VisitorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var (
		apartment, idRaw, action string
		fromForm                 bool
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		fromForm = true
		if err := r.ParseForm(); err != nil {
			h.renderMessage(w, http.StatusBadRequest, "Invalid form submission.")
			return
		}
		apartment = r.URL.Query().Get("apartment")
		if apartment == "" {
			apartment = r.PostFormValue("apartment")
		}
		idRaw = r.PostFormValue("id")
		action = r.PostFormValue("action")
	} else {
		var req updateStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}
		apartment = r.Header.Get("X-Apartment")
		idRaw = req.ID
		action = req.Action
	}

	if apartment == "" {
		h.respond(w, fromForm, http.StatusBadRequest, "Missing apartment identifier.", nil)
		return
	}
	id, err := uuid.Parse(idRaw)
	if err != nil {
		h.respond(w, fromForm, http.StatusBadRequest, "Invalid pass id.", nil)
		return
	}

	status, err := h.visitors.ResolvePass(r.Context(), apartment, id, action)
	if err != nil {
		if fromForm {
			h.renderError(w, err)
		} else {
			respondError(w, h.logger, err)
		}
		return
	}

	h.respond(w, fromForm, http.StatusOK, fmt.Sprintf("Visitor pass %s.", strings.ToLower(string(status))), map[string]any{
		"success": true,
		"status":  status,
	})
}

func (h *VisitorHandler) respond(w http.ResponseWriter, asHTML bool, status int, message string, body map[string]any) {
	if asHTML {
		h.renderMessage(w, status, message)
		return
	}
	if body == nil {
		respondJSON(w, status, errorBody{Message: message})
		return
	}
	body["message"] = message
	respondJSON(w, status, body)
}

// renderError maps domain errors to browser-readable fragments.
func (h *VisitorHandler) renderError(w http.ResponseWriter, err error) {
	var processed *domain.AlreadyProcessedError
	switch {
	case errors.As(err, &processed):
		h.renderMessage(w, http.StatusConflict, fmt.Sprintf("This pass has already been processed: %s.", processed.Status))
	case errors.Is(err, domain.ErrNotFound):
		h.renderMessage(w, http.StatusNotFound, "No visitor pass found for this link.")
	case errors.Is(err, usecase.ErrBadAction):
		h.renderMessage(w, http.StatusBadRequest, "Unknown action.")
	default:
		h.logger.Error("visitor verification failed", "error", err)
		h.renderMessage(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}

func (h *VisitorHandler) renderMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<p>%s</p>", template.HTMLEscapeString(message))
}
