package services

import "errors"

// Sentinel errors shared across services. Controllers translate these to
// HTTP statuses; ErrNotFound deliberately covers "exists but not yours" so
// ownership failures do not leak existence.
var (
	ErrNotFound = errors.New("resource not found")
	ErrNotOwner = errors.New("not the owner of this resource")
)

// ValidationError carries a human-readable rejection reason for bad input
// (missing fields, oversized files, disallowed types, duplicates).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StateError signals that an operation conflicts with the current lifecycle
// state (closed form, reached cap, terminal status). No partial mutation
// happens when one is returned.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }
