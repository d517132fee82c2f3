package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/domain/mocks"
)

type registrationFixture struct {
	svc             *RegistrationService
	apartments      *mocks.MemApartmentRepository
	provisioner     *mocks.MemProvisioner
	centralManagers *mocks.MemManagerRepository
	providers       *mocks.MemServiceProviderRepository
	stores          *mocks.MemStoreProvider
}

func newRegistrationFixture() *registrationFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &registrationFixture{
		apartments:      mocks.NewMemApartmentRepository(),
		provisioner:     &mocks.MemProvisioner{},
		centralManagers: mocks.NewMemManagerRepository(),
		providers:       mocks.NewMemServiceProviderRepository(),
		stores:          mocks.NewMemStoreProvider(),
	}
	apartmentService := NewApartmentService(f.apartments, f.provisioner, logger)
	f.svc = NewRegistrationService(apartmentService, f.centralManagers, f.providers, f.stores, logger)
	return f
}

func TestRegistrationService_RegisterResident(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Pending Resident", func(t *testing.T) {
		f := newRegistrationFixture()
		f.apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		resident, err := f.svc.RegisterResident(ctx, RegisterResidentInput{
			Apartment:     "Lakeview",
			Name:          "Amara",
			Email:         "amara@example.com",
			Password:      "secret123",
			ApartmentCode: "B-204",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resident.Status != domain.StatusPending {
			t.Errorf("expected status %q, got %q", domain.StatusPending, resident.Status)
		}
		if resident.PasswordHash == "secret123" || resident.PasswordHash == "" {
			t.Error("password must be stored hashed")
		}
		if _, err := f.stores.Store("Lakeview").ResidentRepo.FindByEmail(ctx, "amara@example.com"); err != nil {
			t.Errorf("resident not in tenant store: %v", err)
		}
	})

	t.Run("Unregistered Apartment", func(t *testing.T) {
		f := newRegistrationFixture()

		_, err := f.svc.RegisterResident(ctx, RegisterResidentInput{
			Apartment: "Nowhere",
			Email:     "amara@example.com",
			Password:  "pw",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(f.stores.TenantCalls) != 0 {
			t.Errorf("must not open a tenant store for an unregistered apartment, got %v", f.stores.TenantCalls)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		f := newRegistrationFixture()
		f.apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})

		in := RegisterResidentInput{Apartment: "Lakeview", Email: "amara@example.com", Password: "pw"}
		if _, err := f.svc.RegisterResident(ctx, in); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}
		if _, err := f.svc.RegisterResident(ctx, in); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestRegistrationService_ManagerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Register Creates Apartment And Pending Central Row", func(t *testing.T) {
		f := newRegistrationFixture()

		manager, err := f.svc.RegisterManager(ctx, RegisterManagerInput{
			Name:          "Priya",
			Email:         "priya@example.com",
			Password:      "pw",
			ApartmentName: "Lakeview",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if manager.Status != domain.StatusPending {
			t.Errorf("expected status %q, got %q", domain.StatusPending, manager.Status)
		}
		if len(f.provisioner.Provisioned) != 1 || f.provisioner.Provisioned[0] != "Lakeview" {
			t.Errorf("expected Lakeview provisioned, got %v", f.provisioner.Provisioned)
		}
		// The pending manager lives centrally, not in the tenant store.
		if _, err := f.stores.Store("Lakeview").ManagerRepo.FindByEmail(ctx, "priya@example.com"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("pending manager must not be in the tenant store, got %v", err)
		}
	})

	t.Run("Approve Promotes Into Tenant Store", func(t *testing.T) {
		f := newRegistrationFixture()
		manager, err := f.svc.RegisterManager(ctx, RegisterManagerInput{
			Email:         "priya@example.com",
			Password:      "pw",
			ApartmentName: "Lakeview",
		})
		if err != nil {
			t.Fatalf("registration failed: %v", err)
		}

		if err := f.svc.ApproveManager(ctx, manager.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		central, _ := f.centralManagers.FindByID(ctx, manager.ID)
		if central.Status != domain.StatusApproved {
			t.Errorf("expected central status %q, got %q", domain.StatusApproved, central.Status)
		}
		promoted, err := f.stores.Store("Lakeview").ManagerRepo.FindByEmail(ctx, "priya@example.com")
		if err != nil {
			t.Fatalf("manager not promoted into tenant store: %v", err)
		}
		if promoted.Status != domain.StatusApproved {
			t.Errorf("expected promoted status %q, got %q", domain.StatusApproved, promoted.Status)
		}
	})

	t.Run("Second Approval Is Rejected", func(t *testing.T) {
		f := newRegistrationFixture()
		manager, _ := f.svc.RegisterManager(ctx, RegisterManagerInput{
			Email:         "priya@example.com",
			Password:      "pw",
			ApartmentName: "Lakeview",
		})

		if err := f.svc.ApproveManager(ctx, manager.ID); err != nil {
			t.Fatalf("first approval failed: %v", err)
		}
		if err := f.svc.ApproveManager(ctx, manager.ID); !errors.Is(err, ErrAlreadyDecided) {
			t.Fatalf("expected ErrAlreadyDecided, got %v", err)
		}
	})

	t.Run("Reject Leaves Tenant Store Untouched", func(t *testing.T) {
		f := newRegistrationFixture()
		manager, _ := f.svc.RegisterManager(ctx, RegisterManagerInput{
			Email:         "priya@example.com",
			Password:      "pw",
			ApartmentName: "Lakeview",
		})

		if err := f.svc.RejectManager(ctx, manager.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := f.stores.Store("Lakeview").ManagerRepo.FindByEmail(ctx, "priya@example.com"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("rejected manager must not reach the tenant store, got %v", err)
		}
	})

	t.Run("Bad Apartment Name", func(t *testing.T) {
		f := newRegistrationFixture()
		_, err := f.svc.RegisterManager(ctx, RegisterManagerInput{
			Email:         "priya@example.com",
			Password:      "pw",
			ApartmentName: "no spaces allowed",
		})
		if !errors.Is(err, ErrBadApartmentName) {
			t.Fatalf("expected ErrBadApartmentName, got %v", err)
		}
	})

	t.Run("Approve Unknown Manager", func(t *testing.T) {
		f := newRegistrationFixture()
		if err := f.svc.ApproveManager(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRegistrationService_SetResidentStatus(t *testing.T) {
	ctx := context.Background()

	f := newRegistrationFixture()
	f.apartments.Store(ctx, &domain.Apartment{ID: uuid.New(), Name: "Lakeview"})
	resident, err := f.svc.RegisterResident(ctx, RegisterResidentInput{
		Apartment: "Lakeview",
		Email:     "amara@example.com",
		Password:  "pw",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("Approve Pending Resident", func(t *testing.T) {
		if err := f.svc.SetResidentStatus(ctx, "Lakeview", resident.ID, domain.StatusApproved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		stored, _ := f.stores.Store("Lakeview").ResidentRepo.FindByID(ctx, resident.ID)
		if stored.Status != domain.StatusApproved {
			t.Errorf("expected status %q, got %q", domain.StatusApproved, stored.Status)
		}
	})

	t.Run("Second Decision Is Rejected", func(t *testing.T) {
		err := f.svc.SetResidentStatus(ctx, "Lakeview", resident.ID, domain.StatusRejected)
		if !errors.Is(err, ErrAlreadyDecided) {
			t.Fatalf("expected ErrAlreadyDecided, got %v", err)
		}
	})

	t.Run("Unknown Resident", func(t *testing.T) {
		err := f.svc.SetResidentStatus(ctx, "Lakeview", uuid.New(), domain.StatusApproved)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
