package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

type managerRepository struct {
	db *sql.DB
}

func (r *managerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at
		FROM managers
		WHERE id = $1
	`
	return scanManager(r.db.QueryRowContext(ctx, query, id))
}

func (r *managerRepository) FindByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at
		FROM managers
		WHERE email = $1
	`
	return scanManager(r.db.QueryRowContext(ctx, query, email))
}

func (r *managerRepository) Store(ctx context.Context, m *domain.Manager) error {
	query := `
		INSERT INTO managers (id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.NIC,
		m.Email,
		m.PasswordHash,
		m.Phone,
		m.Address,
		m.ApartmentName,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("store manager: %w", err)
	}
	return nil
}

// scanManager is shared with the central-manager repository: the two tables
// carry identical columns, only their store differs.
func scanManager(row *sql.Row) (*domain.Manager, error) {
	var m domain.Manager
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.NIC,
		&m.Email,
		&m.PasswordHash,
		&m.Phone,
		&m.Address,
		&m.ApartmentName,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find manager: %w", err)
	}
	return &m, nil
}
