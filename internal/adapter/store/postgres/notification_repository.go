package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

type notificationRepository struct {
	db *sql.DB
}

func (r *notificationRepository) Store(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, kind, title, message, created_by, creator_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Kind, n.Title, n.Message, n.CreatedBy, n.CreatorName, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `
		SELECT id, kind, title, message, created_by, creator_name, created_at
		FROM notifications
		WHERE id = $1
	`
	var n domain.Notification
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Kind, &n.Title, &n.Message, &n.CreatedBy, &n.CreatorName, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) List(ctx context.Context, kind domain.NotificationKind, excludeDismissedBy uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT n.id, n.kind, n.title, n.message, n.created_by, n.creator_name, n.created_at
		FROM notifications n
		WHERE n.kind = $1
		  AND NOT EXISTS (
			SELECT 1 FROM notification_dismissals d
			WHERE d.notification_id = n.id AND d.user_id = $2
		  )
		ORDER BY n.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, kind, excludeDismissedBy)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.Kind, &n.Title, &n.Message, &n.CreatedBy, &n.CreatorName, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) Dismiss(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		INSERT INTO notification_dismissals (notification_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	return nil
}
