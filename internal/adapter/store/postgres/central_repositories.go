package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

type apartmentRepository struct {
	db *sql.DB
}

func (r *apartmentRepository) FindByName(ctx context.Context, name string) (*domain.Apartment, error) {
	query := `SELECT id, name, created_at FROM apartments WHERE name = $1`

	var a domain.Apartment
	err := r.db.QueryRowContext(ctx, query, name).Scan(&a.ID, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find apartment: %w", err)
	}
	return &a, nil
}

// ListNames returns apartment names in registry (insertion) order. The login
// fan-out scans tenants in exactly this order.
func (r *apartmentRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM apartments ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan apartment name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *apartmentRepository) Store(ctx context.Context, a *domain.Apartment) error {
	query := `INSERT INTO apartments (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("store apartment: %w", err)
	}
	return nil
}

type serviceProviderRepository struct {
	db *sql.DB
}

func (r *serviceProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ServiceProvider, error) {
	query := `
		SELECT id, name, email, password_hash, phone, service_type, created_at
		FROM service_providers
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *serviceProviderRepository) FindByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error) {
	query := `
		SELECT id, name, email, password_hash, phone, service_type, created_at
		FROM service_providers
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *serviceProviderRepository) scanOne(row *sql.Row) (*domain.ServiceProvider, error) {
	var p domain.ServiceProvider
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.ServiceType, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find service provider: %w", err)
	}
	return &p, nil
}

func (r *serviceProviderRepository) Store(ctx context.Context, p *domain.ServiceProvider) error {
	query := `
		INSERT INTO service_providers (id, name, email, password_hash, phone, service_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.PasswordHash, p.Phone, p.ServiceType, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("store service provider: %w", err)
	}
	return nil
}

type centralManagerRepository struct {
	db *sql.DB
}

func (r *centralManagerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at
		FROM central_managers
		WHERE id = $1
	`
	return scanManager(r.db.QueryRowContext(ctx, query, id))
}

func (r *centralManagerRepository) FindByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	query := `
		SELECT id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at
		FROM central_managers
		WHERE email = $1
	`
	return scanManager(r.db.QueryRowContext(ctx, query, email))
}

func (r *centralManagerRepository) Store(ctx context.Context, m *domain.Manager) error {
	query := `
		INSERT INTO central_managers (id, name, nic, email, password_hash, phone, address, apartment_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.NIC, m.Email, m.PasswordHash, m.Phone, m.Address, m.ApartmentName, m.Status, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("store central manager: %w", err)
	}
	return nil
}

func (r *centralManagerRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (bool, error) {
	query := `
		UPDATE central_managers
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("set central manager status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set central manager status: %w", err)
	}
	return n > 0, nil
}

type serviceListingRepository struct {
	db *sql.DB
}

func (r *serviceListingRepository) Store(ctx context.Context, s *domain.ServiceListing) error {
	query := `
		INSERT INTO service_listings (id, provider_id, provider_name, title, description, location, available_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProviderID, s.ProviderName, s.Title, s.Description, s.Location, s.AvailableHours, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store service listing: %w", err)
	}
	return nil
}

func (r *serviceListingRepository) List(ctx context.Context) ([]*domain.ServiceListing, error) {
	query := `
		SELECT id, provider_id, provider_name, title, description, location, available_hours, created_at
		FROM service_listings
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list service listings: %w", err)
	}
	defer rows.Close()

	var out []*domain.ServiceListing
	for rows.Next() {
		var s domain.ServiceListing
		if err := rows.Scan(
			&s.ID, &s.ProviderID, &s.ProviderName, &s.Title, &s.Description, &s.Location, &s.AvailableHours, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service listing: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
