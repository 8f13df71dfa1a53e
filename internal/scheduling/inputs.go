// Package scheduling holds the pure scheduling engine: window resolution, conflict
// detection, the booking status machine and the conversion ledger. Functions here take
// every input explicitly and never read clocks or stores.
package scheduling

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// DayInputs is the snapshot of schedule data for one (professional, unit, date)
type DayInputs struct {
	Date         time.Time
	Professional domain.Professional
	UnitID       int64

	// Exceptions of the professional for Date (all kinds)
	Exceptions []domain.ScheduleException
	// SaturdayProfessional configs of the professional at the unit (any scope)
	SaturdayProfessional []domain.SaturdayProfessionalConfig
	// SaturdayUnit configs of the unit (any scope)
	SaturdayUnit []domain.SaturdayUnitConfig

	// Bookings of the unit on Date for every professional. Capacity counts the whole unit;
	// overlap checks narrow it down to the draft's professional.
	Bookings []*domain.Booking
}

// IsSaturday reports whether the date is a Saturday
func IsSaturday(date time.Time) bool {
	return date.Weekday() == time.Saturday
}

func (in *DayInputs) sameKey(b *domain.Booking) bool {
	return b.ProfessionalID == in.Professional.ID && b.UnitID == in.UnitID && domain.SameDay(b.BookingDate, in.Date)
}

func (in *DayInputs) sameUnitDay(b *domain.Booking) bool {
	return b.UnitID == in.UnitID && domain.SameDay(b.BookingDate, in.Date)
}
