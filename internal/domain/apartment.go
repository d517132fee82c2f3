package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Apartment is a central-registry entry naming one tenant. Created once,
// never renamed or deleted.
type Apartment struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ApartmentRepository defines central-store apartment registry persistence.
// ListNames returns registry order (insertion order); the login fan-out
// depends on that ordering being stable.
type ApartmentRepository interface {
	FindByName(ctx context.Context, name string) (*Apartment, error)
	ListNames(ctx context.Context) ([]string, error)
	Store(ctx context.Context, a *Apartment) error
}
