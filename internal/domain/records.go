package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ComplaintStatus tracks a complaint's lifecycle.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "Open"
	ComplaintResolved ComplaintStatus = "Resolved"
)

// Complaint is a tenant-scoped record owned by the resident who filed it.
// ApartmentCode is frozen at creation from the resident's profile.
type Complaint struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ResidentID    uuid.UUID       `json:"resident_id"`
	ResidentName  string          `json:"resident_name"`
	ApartmentCode string          `json:"apartment_code"`
	Status        ComplaintStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ComplaintRepository interface {
	Store(ctx context.Context, c *Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	// List returns complaints newest-first.
	List(ctx context.Context) ([]*Complaint, error)
	SetStatus(ctx context.Context, id uuid.UUID, status ComplaintStatus) (bool, error)
}

// ResourceStatus marks whether a resource request is still visible.
type ResourceStatus string

const (
	ResourceActive  ResourceStatus = "Active"
	ResourceDeleted ResourceStatus = "Deleted"
)

// ResourceRequest is a tenant-scoped shared-resource request. Deletion is a
// soft status flip so the history survives.
type ResourceRequest struct {
	ID            uuid.UUID      `json:"id"`
	ResourceName  string         `json:"resource_name"`
	Description   string         `json:"description"`
	Quantity      int            `json:"quantity"`
	ResidentID    uuid.UUID      `json:"resident_id"`
	ResidentName  string         `json:"resident_name"`
	ApartmentCode string         `json:"apartment_code"`
	Status        ResourceStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ResourceRepository interface {
	Store(ctx context.Context, r *ResourceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceRequest, error)
	// ListActive returns non-deleted requests newest-first.
	ListActive(ctx context.Context) ([]*ResourceRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status ResourceStatus) (bool, error)
}

// MaintenanceStatus tracks a maintenance request's lifecycle.
type MaintenanceStatus string

const (
	MaintenancePending MaintenanceStatus = "Pending"
	MaintenanceDone    MaintenanceStatus = "Done"
)

// MaintenanceRequest is a tenant-scoped repair request.
type MaintenanceRequest struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	ResidentID    uuid.UUID         `json:"resident_id"`
	ResidentName  string            `json:"resident_name"`
	ApartmentCode string            `json:"apartment_code"`
	Status        MaintenanceStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

type MaintenanceRepository interface {
	Store(ctx context.Context, m *MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)
	List(ctx context.Context) ([]*MaintenanceRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status MaintenanceStatus) (bool, error)
}

// NotificationKind separates manager announcements from resident community
// posts; the two kinds follow different deletion rules.
type NotificationKind string

const (
	NotificationManagement NotificationKind = "management"
	NotificationCommunity  NotificationKind = "community"
)

// Notification is a tenant-scoped announcement. Community notifications can
// be dismissed per-user without deleting them for everyone else.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	CreatorName string           `json:"creator_name"`
	CreatedAt   time.Time        `json:"created_at"`
}

type NotificationRepository interface {
	Store(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// List returns notifications of one kind newest-first, excluding those
	// the given user has dismissed. A nil user ID skips the exclusion.
	List(ctx context.Context, kind NotificationKind, excludeDismissedBy uuid.UUID) ([]*Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Dismiss hides a community notification from one user only.
	Dismiss(ctx context.Context, id, userID uuid.UUID) error
}

// SafetyAlert is a tenant-scoped urgent announcement created by a manager.
type SafetyAlert struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type SafetyAlertRepository interface {
	Store(ctx context.Context, a *SafetyAlert) error
	List(ctx context.Context) ([]*SafetyAlert, error)
}

// ServiceListing is a central-store offering published by a service provider.
// Provider name is denormalized at creation.
type ServiceListing struct {
	ID             uuid.UUID `json:"id"`
	ProviderID     uuid.UUID `json:"provider_id"`
	ProviderName   string    `json:"provider_name"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	AvailableHours string    `json:"available_hours"`
	CreatedAt      time.Time `json:"created_at"`
}

type ServiceListingRepository interface {
	Store(ctx context.Context, s *ServiceListing) error
	List(ctx context.Context) ([]*ServiceListing, error)
}
