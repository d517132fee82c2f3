package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harbourview/aptly/internal/domain"
)

type safetyAlertRepository struct {
	db *sql.DB
}

func (r *safetyAlertRepository) Store(ctx context.Context, a *domain.SafetyAlert) error {
	query := `
		INSERT INTO safety_alerts (id, title, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Description, a.CreatedBy, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("store safety alert: %w", err)
	}
	return nil
}

func (r *safetyAlertRepository) List(ctx context.Context) ([]*domain.SafetyAlert, error) {
	query := `
		SELECT id, title, description, created_by, created_at
		FROM safety_alerts
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list safety alerts: %w", err)
	}
	defer rows.Close()

	var out []*domain.SafetyAlert
	for rows.Next() {
		var a domain.SafetyAlert
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan safety alert: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
