package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/domain/mocks"
	"github.com/harbourview/aptly/pkg/util"
)

const testJWTSecret = "test-secret"

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return hash
}

func TestAuthService_Login(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	newFixture := func(t *testing.T) (*AuthService, *mocks.MemServiceProviderRepository, *mocks.MemApartmentRepository, *mocks.MemManagerRepository, *mocks.MemStoreProvider) {
		providers := mocks.NewMemServiceProviderRepository()
		apartments := mocks.NewMemApartmentRepository()
		centralManagers := mocks.NewMemManagerRepository()
		stores := mocks.NewMemStoreProvider()
		svc := NewAuthService(providers, apartments, centralManagers, stores, testJWTSecret, time.Hour, logger, nil)
		return svc, providers, apartments, centralManagers, stores
	}

	t.Run("Service Provider Resolves Without Tenant Scan", func(t *testing.T) {
		svc, providers, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		id := uuid.New()
		providers.Providers[id] = &domain.ServiceProvider{
			ID:           id,
			Name:         "Fixit Plumbing",
			Email:        "fixit@example.com",
			PasswordHash: mustHash(t, "hunter2"),
		}

		result, err := svc.Login(ctx, "fixit@example.com", "hunter2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.User.Role != domain.RoleServiceProvider {
			t.Errorf("expected role %q, got %q", domain.RoleServiceProvider, result.User.Role)
		}
		if result.User.Apartment != "" {
			t.Errorf("expected no apartment claim, got %q", result.User.Apartment)
		}
		if len(stores.TenantCalls) != 0 {
			t.Errorf("expected no tenant stores touched, got %v", stores.TenantCalls)
		}
	})

	t.Run("Resident Resolves With Apartment Claim", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Sunset"})

		id := uuid.New()
		stores.Store("Sunset").ResidentRepo.Residents[id] = &domain.Resident{
			ID:           id,
			Name:         "Amara",
			Email:        "amara@example.com",
			PasswordHash: mustHash(t, "secret123"),
			Status:       domain.StatusApproved,
		}

		result, err := svc.Login(ctx, "amara@example.com", "secret123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.User.Role != domain.RoleResident {
			t.Errorf("expected role %q, got %q", domain.RoleResident, result.User.Role)
		}
		if result.User.Apartment != "Sunset" {
			t.Errorf("expected apartment %q, got %q", "Sunset", result.User.Apartment)
		}

		claims, err := util.ValidateToken(result.Token, testJWTSecret)
		if err != nil {
			t.Fatalf("expected valid token, got %v", err)
		}
		if claims.UserID != id {
			t.Error("token user id mismatch")
		}
		if claims.Apartment != "Sunset" {
			t.Errorf("expected token apartment %q, got %q", "Sunset", claims.Apartment)
		}
	})

	t.Run("Scan Short Circuits On First Match", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Sunset"})

		id := uuid.New()
		stores.Store("Lakeview").ResidentRepo.Residents[id] = &domain.Resident{
			ID:           id,
			Email:        "first@example.com",
			PasswordHash: mustHash(t, "pw"),
			Status:       domain.StatusApproved,
		}

		if _, err := svc.Login(ctx, "first@example.com", "pw"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(stores.TenantCalls) != 1 || stores.TenantCalls[0] != "Lakeview" {
			t.Errorf("expected a single Lakeview scan, got %v", stores.TenantCalls)
		}
	})

	t.Run("Manager Resolves After Residents In Same Tenant", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		id := uuid.New()
		stores.Store("Lakeview").ManagerRepo.Managers[id] = &domain.Manager{
			ID:           id,
			Email:        "boss@example.com",
			PasswordHash: mustHash(t, "pw"),
			Status:       domain.StatusApproved,
		}

		result, err := svc.Login(ctx, "boss@example.com", "pw")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.User.Role != domain.RoleManager {
			t.Errorf("expected role %q, got %q", domain.RoleManager, result.User.Role)
		}
		if result.User.Apartment != "Lakeview" {
			t.Errorf("expected apartment %q, got %q", "Lakeview", result.User.Apartment)
		}
	})

	t.Run("Pending Central Manager Gets Approval Error", func(t *testing.T) {
		svc, _, apartments, centralManagers, _ := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		id := uuid.New()
		centralManagers.Managers[id] = &domain.Manager{
			ID:           id,
			Email:        "pending@example.com",
			PasswordHash: mustHash(t, "pw"),
			Status:       domain.StatusPending,
		}

		_, err := svc.Login(ctx, "pending@example.com", "pw")
		var approvalErr *domain.ApprovalError
		if !errors.As(err, &approvalErr) {
			t.Fatalf("expected ApprovalError, got %v", err)
		}
		if approvalErr.Status != domain.StatusPending {
			t.Errorf("expected status %q, got %q", domain.StatusPending, approvalErr.Status)
		}
	})

	t.Run("Pending Resident Gets Approval Error Despite Correct Password", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		id := uuid.New()
		stores.Store("Lakeview").ResidentRepo.Residents[id] = &domain.Resident{
			ID:           id,
			Email:        "new@example.com",
			PasswordHash: mustHash(t, "pw"),
			Status:       domain.StatusPending,
		}

		_, err := svc.Login(ctx, "new@example.com", "pw")
		var approvalErr *domain.ApprovalError
		if !errors.As(err, &approvalErr) {
			t.Fatalf("expected ApprovalError, got %v", err)
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		id := uuid.New()
		stores.Store("Lakeview").ResidentRepo.Residents[id] = &domain.Resident{
			ID:           id,
			Email:        "amara@example.com",
			PasswordHash: mustHash(t, "correct"),
			Status:       domain.StatusApproved,
		}

		_, err := svc.Login(ctx, "amara@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Unknown Email Scans Every Tenant", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Sunset"})

		_, err := svc.Login(ctx, "nobody@example.com", "pw")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if len(stores.TenantCalls) != 2 {
			t.Errorf("expected 2 tenant scans, got %v", stores.TenantCalls)
		}
	})

	t.Run("Tenant Store Failure Surfaces", func(t *testing.T) {
		svc, _, apartments, _, stores := newFixture(t)
		apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})
		stores.Err = domain.ErrStoreUnavailable

		_, err := svc.Login(ctx, "anyone@example.com", "pw")
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
