package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// MaintenanceService handles tenant-scoped maintenance requests.
type MaintenanceService struct {
	stores domain.StoreProvider
	logger *slog.Logger
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(stores domain.StoreProvider, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		stores: stores,
		logger: logger.With("component", "maintenance_service"),
	}
}

// Create files a maintenance request on behalf of a resident.
func (s *MaintenanceService) Create(ctx context.Context, apartment string, residentID uuid.UUID, title, description string) (*domain.MaintenanceRequest, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	resident, err := store.Residents().FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	request := &domain.MaintenanceRequest{
		ID:            uuid.New(),
		Title:         title,
		Description:   description,
		ResidentID:    resident.ID,
		ResidentName:  resident.Name,
		ApartmentCode: resident.ApartmentCode,
		Status:        domain.MaintenancePending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.Maintenance().Store(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request created", "apartment", apartment)
	return request, nil
}

// List returns the apartment's maintenance requests newest-first.
func (s *MaintenanceService) List(ctx context.Context, apartment string) ([]*domain.MaintenanceRequest, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return store.Maintenance().List(ctx)
}

// MarkDone completes a request (manager action).
func (s *MaintenanceService) MarkDone(ctx context.Context, apartment string, id uuid.UUID) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	if _, err := store.Maintenance().FindByID(ctx, id); err != nil {
		return err
	}

	changed, err := store.Maintenance().SetStatus(ctx, id, domain.MaintenanceDone)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}
	return nil
}
