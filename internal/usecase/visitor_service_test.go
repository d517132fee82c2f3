package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
	"github.com/harbourview/aptly/internal/domain/mocks"
)

func TestVisitorService_CreatePass(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	stores := mocks.NewMemStoreProvider()
	svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)

	residentID := uuid.New()
	stores.Store("Lakeview").ResidentRepo.Residents[residentID] = &domain.Resident{
		ID:            residentID,
		Name:          "Amara",
		Phone:         "555-0101",
		ApartmentCode: "B-204",
		Status:        domain.StatusApproved,
	}

	t.Run("Copies Resident Profile Into Pass", func(t *testing.T) {
		pass, payload, err := svc.CreatePass(ctx, "Lakeview", residentID, 2, []string{"Ravi", "Mei"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pass.Status != domain.VisitorPending {
			t.Errorf("expected status %q, got %q", domain.VisitorPending, pass.Status)
		}
		if pass.ResidentName != "Amara" || pass.ApartmentCode != "B-204" || pass.Phone != "555-0101" {
			t.Errorf("resident profile not copied: %+v", pass)
		}
		if payload.Apartment != "Lakeview" {
			t.Errorf("expected payload apartment %q, got %q", "Lakeview", payload.Apartment)
		}
		if !strings.Contains(payload.VerifyURL, pass.ID.String()) {
			t.Errorf("verify URL %q missing pass id", payload.VerifyURL)
		}
		if !strings.Contains(payload.VerifyURL, "apartment=Lakeview") {
			t.Errorf("verify URL %q missing apartment param", payload.VerifyURL)
		}

		stored, err := stores.Store("Lakeview").PassRepo.FindByID(ctx, pass.ID)
		if err != nil {
			t.Fatalf("pass not persisted: %v", err)
		}
		if stored.NumOfVisitors != 2 || len(stored.VisitorNames) != 2 {
			t.Errorf("visitor details not persisted: %+v", stored)
		}
	})

	t.Run("Unknown Resident", func(t *testing.T) {
		_, _, err := svc.CreatePass(ctx, "Lakeview", uuid.New(), 1, nil)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestVisitorService_ResolvePass(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	seedPass := func(stores *mocks.MemStoreProvider, status domain.VisitorStatus) uuid.UUID {
		id := uuid.New()
		stores.Store("Lakeview").PassRepo.Passes[id] = &domain.VisitorPass{
			ID:     id,
			Status: status,
		}
		return id
	}

	t.Run("Approve Pending Pass", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)
		id := seedPass(stores, domain.VisitorPending)

		status, err := svc.ResolvePass(ctx, "Lakeview", id, "approve")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if status != domain.VisitorApproved {
			t.Errorf("expected %q, got %q", domain.VisitorApproved, status)
		}
	})

	t.Run("Second Resolution Reports Prior Outcome", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)
		id := seedPass(stores, domain.VisitorPending)

		if _, err := svc.ResolvePass(ctx, "Lakeview", id, "approve"); err != nil {
			t.Fatalf("first resolution failed: %v", err)
		}

		_, err := svc.ResolvePass(ctx, "Lakeview", id, "reject")
		var processedErr *domain.AlreadyProcessedError
		if !errors.As(err, &processedErr) {
			t.Fatalf("expected AlreadyProcessedError, got %v", err)
		}
		if processedErr.Status != domain.VisitorApproved {
			t.Errorf("expected prior status %q, got %q", domain.VisitorApproved, processedErr.Status)
		}
	})

	t.Run("Unknown Pass", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)

		_, err := svc.ResolvePass(ctx, "Lakeview", uuid.New(), "approve")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Bad Action", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)
		id := seedPass(stores, domain.VisitorPending)

		_, err := svc.ResolvePass(ctx, "Lakeview", id, "maybe")
		if !errors.Is(err, ErrBadAction) {
			t.Fatalf("expected ErrBadAction, got %v", err)
		}
	})
}

func TestVisitorService_GetPass(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	stores := mocks.NewMemStoreProvider()
	svc := NewVisitorService(stores, "http://localhost:8080", logger, nil)

	pendingID := uuid.New()
	stores.Store("Lakeview").PassRepo.Passes[pendingID] = &domain.VisitorPass{
		ID:     pendingID,
		Status: domain.VisitorPending,
	}
	rejectedID := uuid.New()
	stores.Store("Lakeview").PassRepo.Passes[rejectedID] = &domain.VisitorPass{
		ID:     rejectedID,
		Status: domain.VisitorRejected,
	}

	t.Run("Pending Pass Is Returned", func(t *testing.T) {
		pass, err := svc.GetPass(ctx, "Lakeview", pendingID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pass.ID != pendingID {
			t.Error("returned wrong pass")
		}
	})

	t.Run("Read Does Not Transition", func(t *testing.T) {
		if _, err := svc.GetPass(ctx, "Lakeview", pendingID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		stored, _ := stores.Store("Lakeview").PassRepo.FindByID(ctx, pendingID)
		if stored.Status != domain.VisitorPending {
			t.Errorf("read mutated pass status to %q", stored.Status)
		}
	})

	t.Run("Terminal Pass Reports Outcome", func(t *testing.T) {
		_, err := svc.GetPass(ctx, "Lakeview", rejectedID)
		var processedErr *domain.AlreadyProcessedError
		if !errors.As(err, &processedErr) {
			t.Fatalf("expected AlreadyProcessedError, got %v", err)
		}
		if processedErr.Status != domain.VisitorRejected {
			t.Errorf("expected status %q, got %q", domain.VisitorRejected, processedErr.Status)
		}
	})

	t.Run("Pass Invisible From Another Tenant", func(t *testing.T) {
		_, err := svc.GetPass(ctx, "Sunset", pendingID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound from foreign tenant, got %v", err)
		}
	})
}
