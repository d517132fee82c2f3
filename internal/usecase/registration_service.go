package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/pkg/util"
)

// ErrAlreadyDecided is returned when an approval targets an application that
// has already been approved or rejected.
var ErrAlreadyDecided = errors.New("application already decided")

// RegisterResidentInput carries a resident registration request.
type RegisterResidentInput struct {
	Apartment     string
	Name          string
	NIC           string
	Email         string
	Password      string
	Phone         string
	ApartmentCode string
}

// RegisterManagerInput carries a manager registration request. The manager
// lands in the central store with status pending; approval promotes them into
// their apartment's tenant store.
type RegisterManagerInput struct {
	ApartmentName string
	Name          string
	NIC           string
	Email         string
	Password      string
	Phone         string
	Address       string
}

// RegisterServiceProviderInput carries a service provider registration.
type RegisterServiceProviderInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	ServiceType string
}

// RegistrationService handles identity registration and the approval
// workflows that move pending identities into active ones.
type RegistrationService struct {
	apartments      *ApartmentService
	centralManagers domain.CentralManagerRepository
	providers       domain.ServiceProviderRepository
	stores          domain.StoreProvider
	logger          *slog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	apartments *ApartmentService,
	centralManagers domain.CentralManagerRepository,
	providers domain.ServiceProviderRepository,
	stores domain.StoreProvider,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		apartments:      apartments,
		centralManagers: centralManagers,
		providers:       providers,
		stores:          stores,
		logger:          logger.With("component", "registration_service"),
	}
}

// RegisterResident creates a pending resident in the apartment's tenant
// store. The apartment must already be registered.
func (s *RegistrationService) RegisterResident(ctx context.Context, in RegisterResidentInput) (*domain.Resident, error) {
	store, err := s.tenantForRegistered(ctx, in.Apartment)
	if err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	resident := &domain.Resident{
		ID:            uuid.New(),
		Name:          in.Name,
		NIC:           in.NIC,
		Email:         in.Email,
		PasswordHash:  hash,
		Phone:         in.Phone,
		ApartmentCode: in.ApartmentCode,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := store.Residents().Store(ctx, resident); err != nil {
		return nil, err
	}

	s.logger.Info("resident registered", "apartment", in.Apartment)
	return resident, nil
}

// RegisterManager records a pending manager in the central store. A
// brand-new apartment name is registered (and its store provisioned) as part
// of the same operation.
func (s *RegistrationService) RegisterManager(ctx context.Context, in RegisterManagerInput) (*domain.Manager, error) {
	if !domain.ValidApartmentName(in.ApartmentName) {
		return nil, ErrBadApartmentName
	}
	if err := s.apartments.Ensure(ctx, in.ApartmentName); err != nil {
		return nil, fmt.Errorf("ensure apartment: %w", err)
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	manager := &domain.Manager{
		ID:            uuid.New(),
		Name:          in.Name,
		NIC:           in.NIC,
		Email:         in.Email,
		PasswordHash:  hash,
		Phone:         in.Phone,
		Address:       in.Address,
		ApartmentName: in.ApartmentName,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.centralManagers.Store(ctx, manager); err != nil {
		return nil, err
	}

	s.logger.Info("manager registered pending approval", "apartment", in.ApartmentName)
	return manager, nil
}

// RegisterServiceProvider creates a central-only identity with no tenant
// affinity; service providers need no approval.
func (s *RegistrationService) RegisterServiceProvider(ctx context.Context, in RegisterServiceProviderInput) (*domain.ServiceProvider, error) {
	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	provider := &domain.ServiceProvider{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		ServiceType:  in.ServiceType,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.providers.Store(ctx, provider); err != nil {
		return nil, err
	}

	s.logger.Info("service provider registered")
	return provider, nil
}

// ApproveManager flips a pending central manager to approved and mirrors the
// manager into their apartment's tenant store. The central row is the
// approval workflow's source of truth; the tenant row is what the login
// fan-out finds afterwards.
func (s *RegistrationService) ApproveManager(ctx context.Context, id uuid.UUID) error {
	manager, err := s.centralManagers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	changed, err := s.centralManagers.SetStatus(ctx, id, domain.StatusApproved)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}

	store, err := s.stores.Tenant(ctx, manager.ApartmentName)
	if err != nil {
		return fmt.Errorf("open tenant %q: %w", manager.ApartmentName, err)
	}

	manager.Status = domain.StatusApproved
	if err := store.Managers().Store(ctx, manager); err != nil {
		// Duplicate means a prior promotion already landed the row.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("promote manager into tenant store: %w", err)
	}

	s.logger.Info("manager approved", "apartment", manager.ApartmentName)
	return nil
}

// RejectManager marks a pending central manager as rejected. Nothing is
// written to the tenant store.
func (s *RegistrationService) RejectManager(ctx context.Context, id uuid.UUID) error {
	if _, err := s.centralManagers.FindByID(ctx, id); err != nil {
		return err
	}

	changed, err := s.centralManagers.SetStatus(ctx, id, domain.StatusRejected)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}

	s.logger.Info("manager rejected")
	return nil
}

// SetResidentStatus approves or rejects a pending resident in the given
// apartment's store.
func (s *RegistrationService) SetResidentStatus(ctx context.Context, apartment string, id uuid.UUID, status domain.ApprovalStatus) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	if _, err := store.Residents().FindByID(ctx, id); err != nil {
		return err
	}

	changed, err := store.Residents().SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !changed {
		return ErrAlreadyDecided
	}

	s.logger.Info("resident status set", "apartment", apartment, "status", status)
	return nil
}

// tenantForRegistered opens a tenant store only after confirming the
// apartment is in the registry, so typos cannot provision stray databases.
func (s *RegistrationService) tenantForRegistered(ctx context.Context, apartment string) (domain.TenantStore, error) {
	exists, err := s.apartments.Exists(ctx, apartment)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return s.stores.Tenant(ctx, apartment)
}
