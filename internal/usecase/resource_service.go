package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// ResourceService handles tenant-scoped shared-resource requests.
type ResourceService struct {
	stores domain.StoreProvider
	logger *slog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(stores domain.StoreProvider, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		stores: stores,
		logger: logger.With("component", "resource_service"),
	}
}

// Create files a resource request on behalf of a resident.
func (s *ResourceService) Create(ctx context.Context, apartment string, residentID uuid.UUID, resourceName, description string, quantity int) (*domain.ResourceRequest, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	resident, err := store.Residents().FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	request := &domain.ResourceRequest{
		ID:            uuid.New(),
		ResourceName:  resourceName,
		Description:   description,
		Quantity:      quantity,
		ResidentID:    resident.ID,
		ResidentName:  resident.Name,
		ApartmentCode: resident.ApartmentCode,
		Status:        domain.ResourceActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.Resources().Store(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("resource request created", "apartment", apartment)
	return request, nil
}

// ListActive returns non-deleted requests newest-first.
func (s *ResourceService) ListActive(ctx context.Context, apartment string) ([]*domain.ResourceRequest, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return store.Resources().ListActive(ctx)
}

// Delete soft-deletes a request. Only the requesting resident may delete it.
func (s *ResourceService) Delete(ctx context.Context, apartment string, id, requesterID uuid.UUID) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	request, err := store.Resources().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if request.ResidentID != requesterID {
		return domain.ErrForbidden
	}

	changed, err := store.Resources().SetStatus(ctx, id, domain.ResourceDeleted)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}
	return nil
}
