package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/harbourview/aptly/internal/adapter/metrics"
	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/pkg/util"
)

// LoginResult carries the minted token and the resolved identity.
type LoginResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// AuthService resolves an identity whose tenant affinity is unknown a priori
// and mints tokens for it. Resolution order is fixed: central service
// providers, then every tenant store in registry order (residents before
// managers), then managers still pending central approval. The per-tenant
// scan is O(number of apartments) and intentionally so; every request after
// login carries the tenant in its token and never fans out again.
type AuthService struct {
	providers       domain.ServiceProviderRepository
	apartments      domain.ApartmentRepository
	centralManagers domain.CentralManagerRepository
	stores          domain.StoreProvider
	jwtSecret       string
	jwtExpiry       time.Duration
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	providers domain.ServiceProviderRepository,
	apartments domain.ApartmentRepository,
	centralManagers domain.CentralManagerRepository,
	stores domain.StoreProvider,
	jwtSecret string,
	jwtExpiry time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *AuthService {
	return &AuthService{
		providers:       providers,
		apartments:      apartments,
		centralManagers: centralManagers,
		stores:          stores,
		jwtSecret:       jwtSecret,
		jwtExpiry:       jwtExpiry,
		logger:          logger.With("component", "auth_service"),
		metrics:         m,
	}
}

// resolved is the outcome of locating an email across the stores, before the
// password and approval checks run.
type resolved struct {
	identity     domain.Identity
	passwordHash string
}

// Login runs the fan-out resolution, verifies the password, enforces the
// approval gate, and mints a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "Login")
	defer span.End()

	match, err := s.resolve(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.countLogin("not_found")
			return nil, domain.ErrInvalidCredentials
		}
		s.countLogin("error")
		return nil, err
	}

	if !util.CheckPasswordHash(password, match.passwordHash) {
		s.countLogin("bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	// Approval gate: tenant-affiliated roles must be approved before any
	// token is issued, regardless of password correctness.
	if match.identity.Role == domain.RoleResident || match.identity.Role == domain.RoleManager {
		if match.identity.Status != domain.StatusApproved {
			s.countLogin("pending")
			return nil, &domain.ApprovalError{Status: match.identity.Status}
		}
	}

	token, err := util.GenerateToken(&match.identity, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		s.countLogin("error")
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.countLogin("success")
	s.logger.Info("login succeeded",
		"role", match.identity.Role,
		"apartment", match.identity.Apartment,
	)

	return &LoginResult{Token: token, User: match.identity}, nil
}

// resolve locates the email, short-circuiting on the first match. Returns
// domain.ErrNotFound when no store holds the email.
func (s *AuthService) resolve(ctx context.Context, email string) (*resolved, error) {
	// 1. Service providers are central-only and never tenant-scoped.
	provider, err := s.providers.FindByEmail(ctx, email)
	if err == nil {
		return &resolved{
			identity: domain.Identity{
				ID:    provider.ID,
				Name:  provider.Name,
				Email: provider.Email,
				Phone: provider.Phone,
				Role:  domain.RoleServiceProvider,
			},
			passwordHash: provider.PasswordHash,
		}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup service provider: %w", err)
	}

	// 2–3. Scan every tenant store in registry order. This lazily opens (and
	// caches) a connection per apartment; an unmatched email pays the full
	// scan every time.
	names, err := s.apartments.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}

	scanned := 0
	defer func() {
		if s.metrics != nil {
			s.metrics.LoginFanOutTenantsScanned.Observe(float64(scanned))
		}
	}()

	for _, apartment := range names {
		store, err := s.stores.Tenant(ctx, apartment)
		if err != nil {
			return nil, fmt.Errorf("open tenant %q: %w", apartment, err)
		}
		scanned++

		resident, err := store.Residents().FindByEmail(ctx, email)
		if err == nil {
			return &resolved{
				identity: domain.Identity{
					ID:        resident.ID,
					Name:      resident.Name,
					Email:     resident.Email,
					Phone:     resident.Phone,
					Role:      domain.RoleResident,
					Apartment: apartment,
					Status:    resident.Status,
				},
				passwordHash: resident.PasswordHash,
			}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup resident in %q: %w", apartment, err)
		}

		manager, err := store.Managers().FindByEmail(ctx, email)
		if err == nil {
			return &resolved{
				identity: domain.Identity{
					ID:        manager.ID,
					Name:      manager.Name,
					Email:     manager.Email,
					Phone:     manager.Phone,
					Role:      domain.RoleManager,
					Apartment: apartment,
					Status:    manager.Status,
				},
				passwordHash: manager.PasswordHash,
			}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup manager in %q: %w", apartment, err)
		}
	}

	// 4. Managers awaiting approval exist only in the central store; they get
	// a distinct pending outcome instead of a generic not-found.
	pending, err := s.centralManagers.FindByEmail(ctx, email)
	if err == nil {
		return &resolved{
			identity: domain.Identity{
				ID:        pending.ID,
				Name:      pending.Name,
				Email:     pending.Email,
				Phone:     pending.Phone,
				Role:      domain.RoleManager,
				Apartment: "",
				Status:    pending.Status,
			},
			passwordHash: pending.PasswordHash,
		}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup central manager: %w", err)
	}

	return nil, domain.ErrNotFound
}

func (s *AuthService) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
