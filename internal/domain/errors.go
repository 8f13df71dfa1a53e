package domain

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

var (
	// ErrValidation marks missing or malformed input, e.g. start >= end
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a rejected booking draft. Use errors.As with *ConflictError for details.
	ErrConflict = errors.New("scheduling conflict")

	// ErrConcurrency marks a write rejected by the store because of a concurrent change
	ErrConcurrency = errors.New("concurrent modification")

	// ErrNotFound marks a missing entity
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an action the actor is not allowed to perform
	ErrForbidden = errors.New("forbidden")
)

// ConflictError describes why a draft was rejected
type ConflictError struct {
	Kind      ConflictKind
	Booking   *Booking
	GridPoint *types.TimeString
}

func (e *ConflictError) Error() string {
	if e.Booking != nil {
		return fmt.Sprintf("%s: %s with booking id=%d", ErrConflict, e.Kind, e.Booking.ID)
	}
	if e.GridPoint != nil {
		return fmt.Sprintf("%s: %s at %s", ErrConflict, e.Kind, *e.GridPoint)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Kind)
}

// Is makes errors.Is(err, ErrConflict) match any ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
