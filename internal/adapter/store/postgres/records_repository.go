package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

type complaintRepository struct {
	db *sql.DB
}

func (r *complaintRepository) Store(ctx context.Context, c *domain.Complaint) error {
	query := `
		INSERT INTO complaints (id, title, description, resident_id, resident_name, apartment_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, c.ResidentID, c.ResidentName, c.ApartmentCode, c.Status, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store complaint: %w", err)
	}
	return nil
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	query := `
		SELECT id, title, description, resident_id, resident_name, apartment_code, status, created_at
		FROM complaints
		WHERE id = $1
	`
	var c domain.Complaint
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.ResidentID, &c.ResidentName, &c.ApartmentCode, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	return &c, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]*domain.Complaint, error) {
	query := `
		SELECT id, title, description, resident_id, resident_name, apartment_code, status, created_at
		FROM complaints
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var out []*domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.ResidentID, &c.ResidentName, &c.ApartmentCode, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *complaintRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ComplaintStatus) (bool, error) {
	query := `UPDATE complaints SET status = $1 WHERE id = $2 AND status <> $1`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("set complaint status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set complaint status: %w", err)
	}
	return n > 0, nil
}

type resourceRepository struct {
	db *sql.DB
}

func (r *resourceRepository) Store(ctx context.Context, req *domain.ResourceRequest) error {
	query := `
		INSERT INTO resource_requests (id, resource_name, description, quantity, resident_id, resident_name, apartment_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.ResourceName, req.Description, req.Quantity,
		req.ResidentID, req.ResidentName, req.ApartmentCode, req.Status, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store resource request: %w", err)
	}
	return nil
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResourceRequest, error) {
	query := `
		SELECT id, resource_name, description, quantity, resident_id, resident_name, apartment_code, status, created_at
		FROM resource_requests
		WHERE id = $1
	`
	var req domain.ResourceRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.ResourceName, &req.Description, &req.Quantity,
		&req.ResidentID, &req.ResidentName, &req.ApartmentCode, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find resource request: %w", err)
	}
	return &req, nil
}

func (r *resourceRepository) ListActive(ctx context.Context) ([]*domain.ResourceRequest, error) {
	query := `
		SELECT id, resource_name, description, quantity, resident_id, resident_name, apartment_code, status, created_at
		FROM resource_requests
		WHERE status = 'Active'
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list resource requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.ResourceRequest
	for rows.Next() {
		var req domain.ResourceRequest
		if err := rows.Scan(
			&req.ID, &req.ResourceName, &req.Description, &req.Quantity,
			&req.ResidentID, &req.ResidentName, &req.ApartmentCode, &req.Status, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource request: %w", err)
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}

func (r *resourceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) (bool, error) {
	query := `UPDATE resource_requests SET status = $1 WHERE id = $2 AND status <> $1`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("set resource status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set resource status: %w", err)
	}
	return n > 0, nil
}

type maintenanceRepository struct {
	db *sql.DB
}

func (r *maintenanceRepository) Store(ctx context.Context, m *domain.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, title, description, resident_id, resident_name, apartment_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Description, m.ResidentID, m.ResidentName, m.ApartmentCode, m.Status, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store maintenance request: %w", err)
	}
	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error) {
	query := `
		SELECT id, title, description, resident_id, resident_name, apartment_code, status, created_at
		FROM maintenance_requests
		WHERE id = $1
	`
	var m domain.MaintenanceRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.ResidentID, &m.ResidentName, &m.ApartmentCode, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	return &m, nil
}

func (r *maintenanceRepository) List(ctx context.Context) ([]*domain.MaintenanceRequest, error) {
	query := `
		SELECT id, title, description, resident_id, resident_name, apartment_code, status, created_at
		FROM maintenance_requests
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.MaintenanceRequest
	for rows.Next() {
		var m domain.MaintenanceRequest
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.ResidentID, &m.ResidentName, &m.ApartmentCode, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan maintenance request: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *maintenanceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MaintenanceStatus) (bool, error) {
	query := `UPDATE maintenance_requests SET status = $1 WHERE id = $2 AND status <> $1`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("set maintenance status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set maintenance status: %w", err)
	}
	return n > 0, nil
}
