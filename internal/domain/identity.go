package domain

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Role defines the permission level of an authenticated identity.
// Role strings are canonically lowercase; every comparison site uses these
// constants, never a literal.
type Role string

const (
	RoleResident        Role = "resident"
	RoleManager         Role = "manager"
	RoleServiceProvider Role = "serviceProvider"
)

// ApprovalStatus tracks the registration workflow of residents and managers.
// Only approved identities may authenticate into protected routes.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Resident is a tenant-scoped identity living in exactly one apartment
// complex's store.
type Resident struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	NIC           string         `json:"nic"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	Phone         string         `json:"phone"`
	ApartmentCode string         `json:"apartment_code"`
	Status        ApprovalStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Manager is a tenant-scoped identity once approved. Before approval the same
// record lives only in the central store (see CentralManagerRepository).
type Manager struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	NIC           string         `json:"nic"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	ApartmentName string         `json:"apartment_name"`
	Status        ApprovalStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ServiceProvider is a central-only identity with no tenant affinity.
type ServiceProvider struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	ServiceType  string    `json:"service_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved outcome of a login: who matched, where they live,
// and the claims that go into the token.
type Identity struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Role      Role           `json:"role"`
	Apartment string         `json:"apartment_complex_name,omitempty"`
	Status    ApprovalStatus `json:"status,omitempty"`
}

// ResidentRepository defines tenant-scoped resident persistence.
type ResidentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	FindByEmail(ctx context.Context, email string) (*Resident, error)
	Store(ctx context.Context, r *Resident) error
	// SetStatus transitions a resident's approval status from pending and
	// reports whether a row actually changed.
	SetStatus(ctx context.Context, id uuid.UUID, status ApprovalStatus) (bool, error)
}

// ManagerRepository defines tenant-scoped manager persistence.
type ManagerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manager, error)
	FindByEmail(ctx context.Context, email string) (*Manager, error)
	Store(ctx context.Context, m *Manager) error
}

// CentralManagerRepository holds managers awaiting approval, before a tenant
// row exists for them.
type CentralManagerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manager, error)
	FindByEmail(ctx context.Context, email string) (*Manager, error)
	Store(ctx context.Context, m *Manager) error
	SetStatus(ctx context.Context, id uuid.UUID, status ApprovalStatus) (bool, error)
}

// ServiceProviderRepository is central-only.
type ServiceProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceProvider, error)
	FindByEmail(ctx context.Context, email string) (*ServiceProvider, error)
	Store(ctx context.Context, p *ServiceProvider) error
}

// Apartment names double as physical store names, so the charset is locked
// down at registration time.
var apartmentNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,63}$`)

// ValidApartmentName reports whether name is usable as a tenant identifier.
func ValidApartmentName(name string) bool {
	return apartmentNameRe.MatchString(name)
}
