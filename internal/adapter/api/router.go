package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harbourview/aptly/internal/adapter/api/handler"
	"github.com/harbourview/aptly/internal/adapter/api/middleware"
	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/pkg/config"
	"github.com/harbourview/aptly/internal/usecase"
)

// Services bundles the use cases the public API exposes.
type Services struct {
	Auth          *usecase.AuthService
	Apartments    *usecase.ApartmentService
	Registration  *usecase.RegistrationService
	Visitors      *usecase.VisitorService
	Complaints    *usecase.ComplaintService
	Resources     *usecase.ResourceService
	Maintenance   *usecase.MaintenanceService
	Notifications *usecase.NotificationService
	SafetyAlerts  *usecase.SafetyAlertService
	Listings      *usecase.ListingService
}

// NewRouter creates and configures the main HTTP router for the public API.
func NewRouter(cfg *config.Config, logger *slog.Logger, svc Services) http.Handler {
	authHandler := handler.NewAuthHandler(svc.Auth, logger)
	apartmentHandler := handler.NewApartmentHandler(svc.Apartments, logger)
	registrationHandler := handler.NewRegistrationHandler(svc.Registration, logger)
	visitorHandler := handler.NewVisitorHandler(svc.Visitors, logger)
	recordsHandler := handler.NewRecordsHandler(svc.Complaints, svc.Resources, svc.Maintenance, logger)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications, logger)
	safetyHandler := handler.NewSafetyHandler(svc.SafetyAlerts, logger)
	listingHandler := handler.NewListingHandler(svc.Listings, logger)

	auth := middleware.Auth(cfg.JWTSecret, logger)
	requireResident := middleware.RequireRole(domain.RoleResident)
	requireManager := middleware.RequireRole(domain.RoleManager)
	requireProvider := middleware.RequireRole(domain.RoleServiceProvider)
	loginLimit := middleware.RateLimit(cfg.LoginRatePerMin)

	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Unauthenticated surface. Login and the visitor pass endpoints are
		// rate limited per IP since they are open guessing targets.
		r.With(loginLimit).Post("/auth/login", authHandler.Login)

		r.Post("/apartments", apartmentHandler.Create)
		r.Get("/apartments", apartmentHandler.List)

		r.Post("/residents/register", registrationHandler.RegisterResident)
		r.Post("/managers/register", registrationHandler.RegisterManager)
		r.Post("/managers/approve", registrationHandler.ApproveManager)
		r.Post("/service-providers/register", registrationHandler.RegisterServiceProvider)

		r.Group(func(r chi.Router) {
			r.Use(loginLimit)
			r.Get("/visitor/verify/{id}", visitorHandler.Verify)
			r.Post("/visitor/update-status", visitorHandler.UpdateStatus)
		})

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.With(requireResident).Post("/visitor/generate-qr", visitorHandler.GenerateQR)

			r.With(requireResident).Post("/complaints", recordsHandler.CreateComplaint)
			r.Get("/complaints", recordsHandler.ListComplaints)
			r.With(requireManager).Patch("/complaints/{id}/resolve", recordsHandler.ResolveComplaint)

			r.With(requireResident).Post("/resources", recordsHandler.CreateResource)
			r.Get("/resources", recordsHandler.ListResources)
			r.With(requireResident).Delete("/resources/{id}", recordsHandler.DeleteResource)

			r.With(requireResident).Post("/maintenance", recordsHandler.CreateMaintenance)
			r.Get("/maintenance", recordsHandler.ListMaintenance)
			r.With(requireManager).Patch("/maintenance/{id}/complete", recordsHandler.CompleteMaintenance)

			r.Route("/notifications", func(r chi.Router) {
				r.With(requireManager).Post("/management", notificationHandler.CreateManagement)
				r.Get("/management", notificationHandler.ListManagement)
				r.With(requireResident).Post("/community", notificationHandler.CreateCommunity)
				r.Get("/community", notificationHandler.ListCommunity)
				r.Delete("/{id}", notificationHandler.Delete)
				r.Patch("/{id}/dismiss", notificationHandler.Dismiss)
			})

			r.With(requireManager).Post("/safety-alerts", safetyHandler.Create)
			r.Get("/safety-alerts", safetyHandler.List)

			r.With(requireProvider).Post("/services", listingHandler.Create)
			r.Get("/services", listingHandler.List)

			r.With(requireManager).Patch("/residents/{id}/approve", registrationHandler.SetResidentStatus)
		})
	})

	return r
}
