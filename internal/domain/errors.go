package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist in the
	// store it was looked up in.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on duplicate registration attempts
	// (email or apartment name collisions).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the login response does not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned on role or ownership mismatches.
	ErrForbidden = errors.New("forbidden")

	// ErrStoreUnavailable wraps infrastructure failures reaching a central or
	// tenant store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ApprovalError is returned when an identity authenticates correctly but has
// not been approved into its tenant yet. It carries the actual status so the
// client can distinguish pending from rejected.
type ApprovalError struct {
	Status ApprovalStatus
}

func (e *ApprovalError) Error() string {
	return fmt.Sprintf("account is %s, not approved", e.Status)
}

// AlreadyProcessedError is returned when a visitor pass in a terminal state is
// rendered or resolved again. It carries the recorded terminal status.
type AlreadyProcessedError struct {
	Status VisitorStatus
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("pass already processed: %s", e.Status)
}
