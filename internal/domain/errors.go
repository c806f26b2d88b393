package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared by the services and mapped to API error codes by the controllers.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidInterval    = errors.New("invalid interval")
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrAlreadyAssigned    = errors.New("slot already assigned")
	ErrSelfAssignment     = errors.New("cannot accept own slot")
	ErrTooLate            = errors.New("slot has already started")
	ErrSlotCancelled      = errors.New("slot is cancelled")
	ErrConcurrentUpdate   = errors.New("slot changed concurrently")

	// ErrUnavailable marks storage failures. Callers see a generic failure; the cause stays in the chain for logs.
	ErrUnavailable = errors.New("storage unavailable")
)

// ConflictError reports which existing slot overlaps the requested interval.
type ConflictError struct {
	SlotID   string
	Interval Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: overlaps slot %s (%s - %s)",
		ErrSchedulingConflict, e.SlotID,
		e.Interval.Start.UTC().Format(time.RFC3339), e.Interval.End().UTC().Format(time.RFC3339))
}

// Is lets errors.Is(err, ErrSchedulingConflict) match a *ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}

// Unavailable wraps a storage error so it matches ErrUnavailable and still carries the cause.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
