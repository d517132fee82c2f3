package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// ListingService handles service-provider offerings. Listings live in the
// central store with no tenant affinity.
type ListingService struct {
	providers domain.ServiceProviderRepository
	listings  domain.ServiceListingRepository
	logger    *slog.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(providers domain.ServiceProviderRepository, listings domain.ServiceListingRepository, logger *slog.Logger) *ListingService {
	return &ListingService{
		providers: providers,
		listings:  listings,
		logger:    logger.With("component", "listing_service"),
	}
}

// Create publishes a listing; the provider name is denormalized at creation.
func (s *ListingService) Create(ctx context.Context, providerID uuid.UUID, title, description, location, availableHours string) (*domain.ServiceListing, error) {
	provider, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	listing := &domain.ServiceListing{
		ID:             uuid.New(),
		ProviderID:     provider.ID,
		ProviderName:   provider.Name,
		Title:          title,
		Description:    description,
		Location:       location,
		AvailableHours: availableHours,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.listings.Store(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("service listing published")
	return listing, nil
}

// List returns all listings newest-first.
func (s *ListingService) List(ctx context.Context) ([]*domain.ServiceListing, error) {
	return s.listings.List(ctx)
}
