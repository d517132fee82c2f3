package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VisitorStatus is the state of a visitor pass. Pending is the only
// non-terminal state; Approved and Rejected are terminal.
type VisitorStatus string

const (
	VisitorPending  VisitorStatus = "Pending"
	VisitorApproved VisitorStatus = "Approved"
	VisitorRejected VisitorStatus = "Rejected"
)

// VisitorPass is a single-use approval record for a set of expected guests.
// Resident name, apartment code and phone are copied from the resident's
// profile at creation; later profile edits do not touch existing passes.
type VisitorPass struct {
	ID            uuid.UUID     `json:"id"`
	ResidentID    uuid.UUID     `json:"resident_id"`
	ResidentName  string        `json:"resident_name"`
	ApartmentCode string        `json:"apartment_code"`
	NumOfVisitors int           `json:"num_of_visitors"`
	VisitorNames  []string      `json:"visitor_names"`
	Phone         string        `json:"phone"`
	Status        VisitorStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// VisitorPassRepository defines tenant-scoped pass persistence.
type VisitorPassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VisitorPass, error)
	Store(ctx context.Context, p *VisitorPass) error
	// Resolve atomically transitions the pass from Pending to the given
	// terminal status and reports whether the transition happened. A false
	// return means the pass was absent or already terminal; callers re-read
	// to tell the two apart.
	Resolve(ctx context.Context, id uuid.UUID, to VisitorStatus) (bool, error)
}
