package domain

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a referenced entity id does not exist.
type NotFoundError struct {
	Kind string // entity type, e.g. "issue", "board"
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%q", e.Kind, e.ID)
}

// InvalidArgumentError indicates a malformed enum token, a missing required
// field, or a cross-reference violation. Nothing is persisted when it is
// returned.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError indicates a concurrent modification was detected on the
// same entity. Callers should re-read and retry.
type ConflictError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s modified concurrently: id=%q", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
