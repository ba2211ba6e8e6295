package application

import (
	"errors"
	"time"
)

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a unique resource already exists.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSessionExpired is returned when a presented session token has expired.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a presented session token was revoked.
	ErrSessionRevoked = errors.New("application: session revoked")
	// ErrNoAvailability is returned when a requested day has no free slot left.
	ErrNoAvailability = errors.New("application: no availability")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// Conflict describes one existing commitment that blocks a proposed period.
type Conflict struct {
	Kind    string // meeting, leave, or engagement
	ID      string
	OwnerID string
	Title   string
	Start   time.Time
	End     time.Time
}

// ConflictError rejects a booking whose period overlaps existing commitments.
// The admission is all-or-nothing: a single busy participant blocks the whole
// request, and every blocking commitment is listed.
type ConflictError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	if c == nil {
		return ""
	}
	return "scheduling conflict"
}
