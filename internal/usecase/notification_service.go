package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// NotificationService handles tenant-scoped announcements. Management
// notifications are manager-authored broadcasts; community notifications are
// resident posts that each user can dismiss for themselves.
type NotificationService struct {
	stores domain.StoreProvider
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(stores domain.StoreProvider, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		stores: stores,
		logger: logger.With("component", "notification_service"),
	}
}

// Create posts a notification of the given kind.
func (s *NotificationService) Create(ctx context.Context, apartment string, kind domain.NotificationKind, creatorID uuid.UUID, creatorName, title, message string) (*domain.Notification, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		ID:          uuid.New(),
		Kind:        kind,
		Title:       title,
		Message:     message,
		CreatedBy:   creatorID,
		CreatorName: creatorName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Notifications().Store(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Info("notification created", "apartment", apartment, "kind", kind)
	return notification, nil
}

// List returns notifications of one kind newest-first, excluding those the
// viewer has dismissed.
func (s *NotificationService) List(ctx context.Context, apartment string, kind domain.NotificationKind, viewerID uuid.UUID) ([]*domain.Notification, error) {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return store.Notifications().List(ctx, kind, viewerID)
}

// Delete removes a notification for everyone. Managers may delete any
// notification; residents only their own community posts.
func (s *NotificationService) Delete(ctx context.Context, apartment string, id, requesterID uuid.UUID, requesterRole domain.Role) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	notification, err := store.Notifications().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if requesterRole != domain.RoleManager && notification.CreatedBy != requesterID {
		return domain.ErrForbidden
	}

	return store.Notifications().Delete(ctx, id)
}

// Dismiss hides a community notification from the requesting user only.
func (s *NotificationService) Dismiss(ctx context.Context, apartment string, id, userID uuid.UUID) error {
	store, err := s.stores.Tenant(ctx, apartment)
	if err != nil {
		return err
	}

	if _, err := store.Notifications().FindByID(ctx, id); err != nil {
		return err
	}
	return store.Notifications().Dismiss(ctx, id, userID)
}
