package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict that could not be resolved within the
// bounded optimistic retry loop (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateJob is returned when a non-terminal job already exists for the
// same (order, shop order) pair. Callers must not retry with the same key.
var ErrDuplicateJob = errors.New("duplicate job")

// ErrIllegalTransition is returned when a job is asked to move to a state that
// is not reachable from its current one.
var ErrIllegalTransition = errors.New("illegal transition")
