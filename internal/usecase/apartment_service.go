package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// ErrBadApartmentName is returned when a proposed apartment name cannot be
// used as a tenant identifier.
var ErrBadApartmentName = errors.New("apartment name must be 1-63 characters of letters, digits, underscore or dash")

// ApartmentService owns the central apartment registry and tenant
// provisioning. Registering an apartment is the only way a tenant comes into
// existence; tenants are never renamed or deleted.
type ApartmentService struct {
	apartments  domain.ApartmentRepository
	provisioner domain.TenantProvisioner
	logger      *slog.Logger
}

// NewApartmentService creates a new ApartmentService.
func NewApartmentService(apartments domain.ApartmentRepository, provisioner domain.TenantProvisioner, logger *slog.Logger) *ApartmentService {
	return &ApartmentService{
		apartments:  apartments,
		provisioner: provisioner,
		logger:      logger.With("component", "apartment_service"),
	}
}

// Create registers a new apartment complex and provisions its isolated store.
func (s *ApartmentService) Create(ctx context.Context, name string) (*domain.Apartment, error) {
	if !domain.ValidApartmentName(name) {
		return nil, ErrBadApartmentName
	}

	apartment := &domain.Apartment{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.apartments.Store(ctx, apartment); err != nil {
		return nil, err
	}

	if err := s.provisioner.Provision(ctx, name); err != nil {
		// Registry row exists but the database does not; surface the failure
		// so the operator retries. First tenant access would otherwise fail
		// with a connect error anyway.
		return nil, fmt.Errorf("provision apartment %q: %w", name, err)
	}

	s.logger.Info("apartment registered", "name", name)
	return apartment, nil
}

// Ensure registers the apartment if it is not in the registry yet. Used by
// manager registration for a brand-new complex.
func (s *ApartmentService) Ensure(ctx context.Context, name string) error {
	_, err := s.apartments.FindByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	_, err = s.Create(ctx, name)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent registration; the apartment exists.
		return nil
	}
	return err
}

// Exists reports whether an apartment name is in the registry.
func (s *ApartmentService) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.apartments.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListNames returns all registered apartment names in registry order.
func (s *ApartmentService) ListNames(ctx context.Context) ([]string, error) {
	return s.apartments.ListNames(ctx)
}
