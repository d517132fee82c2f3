package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// ComplaintService handles tenant-scoped resident complaints.
type ComplaintService struct {
	stores domain.StoreProvider
	logger *slog.Logger
}

// NewComplaintService creates a new ComplaintService.
func NewComplaintService(stores domain.StoreProvider, logger *slog.Logger) *ComplaintService {
	return &ComplaintService{
		stores: stores,
		logger: logger.With("component", "complaint_service"),
	}
}

// Create files a complaint on behalf of a resident. The apartment code is
// frozen from the resident's profile at creation.
func (s *ComplaintService) Create(ctx context.Context, apartment string, residentID uuid.UUID, title, description string) (*domain.Complaint, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	resident, err := store.Residents().FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		ID:            uuid.New(),
		Title:         title,
		Description:   description,
		ResidentID:    resident.ID,
		ResidentName:  resident.Name,
		ApartmentCode: resident.ApartmentCode,
		Status:        domain.ComplaintOpen,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.Complaints().Store(ctx, complaint); err != nil {
		return nil, err
	}

	s.logger.Info("complaint filed", "apartment", apartment)
	return complaint, nil
}

// List returns the apartment's complaints newest-first.
func (s *ComplaintService) List(ctx context.Context, apartment string) ([]*domain.Complaint, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return store.Complaints().List(ctx)
}

// Resolve marks a complaint resolved (manager action).
func (s *ComplaintService) Resolve(ctx context.Context, apartment string, id uuid.UUID) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	if _, err := store.Complaints().FindByID(ctx, id); err != nil {
		return err
	}

	changed, err := store.Complaints().SetStatus(ctx, id, domain.ComplaintResolved)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}
	return nil
}
