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

type captureBroadcaster struct {
	apartments []string
	alerts     []*domain.SafetyAlert
	err        error
}

func (b *captureBroadcaster) Broadcast(ctx context.Context, apartment string, alert *domain.SafetyAlert) error {
	b.apartments = append(b.apartments, apartment)
	b.alerts = append(b.alerts, alert)
	return b.err
}

func TestSafetyAlertService_Create(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("Persists Then Broadcasts", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		broadcaster := &captureBroadcaster{}
		svc := NewSafetyAlertService(stores, broadcaster, logger)

		alert, err := svc.Create(ctx, "Lakeview", uuid.New(), "Gas leak", "Block B, evacuate")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		stored, err := stores.Store("Lakeview").AlertRepo.List(ctx)
		if err != nil || len(stored) != 1 {
			t.Fatalf("alert not persisted: %v (%d stored)", err, len(stored))
		}
		if len(broadcaster.apartments) != 1 || broadcaster.apartments[0] != "Lakeview" {
			t.Errorf("expected one Lakeview broadcast, got %v", broadcaster.apartments)
		}
		if broadcaster.alerts[0].ID != alert.ID {
			t.Error("broadcast alert mismatch")
		}
	})

	t.Run("Broadcast Failure Does Not Fail Creation", func(t *testing.T) {
		stores := mocks.NewMemStoreProvider()
		broadcaster := &captureBroadcaster{err: errors.New("redis down")}
		svc := NewSafetyAlertService(stores, broadcaster, logger)

		if _, err := svc.Create(ctx, "Lakeview", uuid.New(), "Fire drill", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		stored, _ := stores.Store("Lakeview").AlertRepo.List(ctx)
		if len(stored) != 1 {
			t.Fatalf("alert must be durable despite broadcast failure, got %d", len(stored))
		}
	})
}
