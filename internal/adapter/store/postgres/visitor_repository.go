package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/harbourview/aptly/internal/domain"
)

type visitorPassRepository struct {
	db *sql.DB
}

func (r *visitorPassRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VisitorPass, error) {
	query := `
		SELECT id, resident_id, resident_name, apartment_code, num_of_visitors, visitor_names, phone, status, created_at
		FROM visitor_passes
		WHERE id = $1
	`

	var p domain.VisitorPass
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.ResidentID,
		&p.ResidentName,
		&p.ApartmentCode,
		&p.NumOfVisitors,
		pq.Array(&p.VisitorNames),
		&p.Phone,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find visitor pass: %w", err)
	}
	return &p, nil
}

func (r *visitorPassRepository) Store(ctx context.Context, p *domain.VisitorPass) error {
	query := `
		INSERT INTO visitor_passes (id, resident_id, resident_name, apartment_code, num_of_visitors, visitor_names, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ResidentID,
		p.ResidentName,
		p.ApartmentCode,
		p.NumOfVisitors,
		pq.Array(p.VisitorNames),
		p.Phone,
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store visitor pass: %w", err)
	}
	return nil
}

// Resolve is a conditional update keyed on the Pending state, so two
// concurrent resolutions of the same pass cannot both succeed: the loser sees
// zero rows affected.
func (r *visitorPassRepository) Resolve(ctx context.Context, id uuid.UUID, to domain.VisitorStatus) (bool, error) {
	query := `
		UPDATE visitor_passes
		SET status = $1
		WHERE id = $2 AND status = 'Pending'
	`
	result, err := r.db.ExecContext(ctx, query, to, id)
	if err != nil {
		return false, fmt.Errorf("resolve visitor pass: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve visitor pass: %w", err)
	}
	return n > 0, nil
}
