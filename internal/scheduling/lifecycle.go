package scheduling

import (
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// transitions допустимые переходы статусов: from -> to
// cancelado, ausencia и concluido терминальны, bloqueio не переходит никуда
var transitions = map[domain.BookingStatus]map[domain.BookingStatus]bool{
	domain.StatusScheduled: {
		domain.StatusConfirmed: true,
		domain.StatusNoShow:    true,
		domain.StatusCancelled: true,
		domain.StatusCompleted: true,
	},
	domain.StatusConfirmed: {
		domain.StatusConfirmed: true,
		domain.StatusNoShow:    true,
		domain.StatusCancelled: true,
		domain.StatusCompleted: true,
	},
}

// CanTransition reports whether the status machine allows from -> to
func CanTransition(from, to domain.BookingStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// Transition returns a copy of the booking moved to the new status.
// Cancelled, block and terminal bookings are rejected with domain.ErrValidation.
func Transition(b domain.Booking, to domain.BookingStatus) (domain.Booking, error) {
	if !to.IsValid() {
		return domain.Booking{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}

	switch {
	case b.IsBlock():
		return domain.Booking{}, fmt.Errorf("%w: block id=%d never changes status", domain.ErrValidation, b.ID)
	case b.IsCancelled():
		return domain.Booking{}, fmt.Errorf("%w: booking id=%d is already cancelled", domain.ErrValidation, b.ID)
	case b.IsTerminal():
		return domain.Booking{}, fmt.Errorf("%w: booking id=%d is in terminal status %s", domain.ErrValidation, b.ID, b.Status)
	}

	if !CanTransition(b.Status, to) {
		return domain.Booking{}, fmt.Errorf("%w: transition %s -> %s is not allowed", domain.ErrValidation, b.Status, to)
	}

	b.Status = to
	return b, nil
}

// CompleteFromClinicalNote marks the booking concluido when a clinical note is recorded.
// A booking that is already concluido is returned unchanged.
func CompleteFromClinicalNote(b domain.Booking) (domain.Booking, error) {
	if b.Status == domain.StatusCompleted {
		return b, nil
	}
	return Transition(b, domain.StatusCompleted)
}
