package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

type residentRepository struct {
	db *sql.DB
}

func (r *residentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, apartment_code, status, created_at
		FROM residents
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *residentRepository) FindByEmail(ctx context.Context, email string) (*domain.Resident, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, apartment_code, status, created_at
		FROM residents
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *residentRepository) scanOne(row *sql.Row) (*domain.Resident, error) {
	var res domain.Resident
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.NIC,
		&res.Email,
		&res.PasswordHash,
		&res.Phone,
		&res.ApartmentCode,
		&res.Status,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find resident: %w", err)
	}
	return &res, nil
}

func (r *residentRepository) Store(ctx context.Context, res *domain.Resident) error {
	query := `
		INSERT INTO residents (id, name, nic, email, password_hash, phone, apartment_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Name,
		res.NIC,
		res.Email,
		res.PasswordHash,
		res.Phone,
		res.ApartmentCode,
		res.Status,
		res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("store resident: %w", err)
	}
	return nil
}

func (r *residentRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (bool, error) {
	query := `
		UPDATE residents
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("set resident status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set resident status: %w", err)
	}
	return n > 0, nil
}
