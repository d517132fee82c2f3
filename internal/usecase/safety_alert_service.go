package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/adapter/notifier"
	"github.com/harbourview/aptly/internal/domain"
)

// SafetyAlertService handles tenant-scoped safety alerts. Creation persists
// the alert first and then broadcasts it; a broadcast failure is logged but
// never fails the request, since the alert is already durable.
type SafetyAlertService struct {
	stores      domain.StoreProvider
	broadcaster notifier.Broadcaster
	logger      *slog.Logger
}

// NewSafetyAlertService creates a new SafetyAlertService.
func NewSafetyAlertService(stores domain.StoreProvider, broadcaster notifier.Broadcaster, logger *slog.Logger) *SafetyAlertService {
	return &SafetyAlertService{
		stores:      stores,
		broadcaster: broadcaster,
		logger:      logger.With("component", "safety_alert_service"),
	}
}

// Create persists and broadcasts a safety alert (manager action).
func (s *SafetyAlertService) Create(ctx context.Context, apartment string, managerID uuid.UUID, title, description string) (*domain.SafetyAlert, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	alert := &domain.SafetyAlert{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedBy:   managerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.SafetyAlerts().Store(ctx, alert); err != nil {
		return nil, err
	}

	if err := s.broadcaster.Broadcast(ctx, apartment, alert); err != nil {
		s.logger.Warn("safety alert broadcast failed", "apartment", apartment, "error", err)
	}

	s.logger.Info("safety alert created", "apartment", apartment)
	return alert, nil
}

// List returns the apartment's safety alerts newest-first.
func (s *SafetyAlertService) List(ctx context.Context, apartment string) ([]*domain.SafetyAlert, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return store.SafetyAlerts().List(ctx)
}
