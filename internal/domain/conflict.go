package domain

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// ConflictKind is the reason a booking draft is rejected
type ConflictKind string

const (
	ConflictBlocked         ConflictKind = "blocked"
	ConflictOccupied        ConflictKind = "occupied"
	ConflictOutOfHours      ConflictKind = "out_of_hours"
	ConflictCapacityReached ConflictKind = "capacity_reached"
)

// DraftKind distinguishes client appointments from administrative blocks
type DraftKind string

const (
	DraftAppointment DraftKind = "appointment"
	DraftBlock       DraftKind = "block"
)

// Draft is a candidate booking interval
type Draft struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
	Start          types.TimeString
	End            types.TimeString
	// SelfID excludes the booking being edited from the checks
	SelfID *int64
	Kind   DraftKind
}

// Interval returns the draft interval
func (d *Draft) Interval() Interval {
	return Interval{Start: d.Start, End: d.End}
}

// IsSelf reports whether the booking is the one being edited
func (d *Draft) IsSelf(b *Booking) bool {
	return d.SelfID != nil && *d.SelfID == b.ID
}

// LockKeys returns the keys to hold before checking and writing the draft, in acquisition order.
// Saturday drafts also take the unit key because capacity is shared by every professional of the unit.
func (d *Draft) LockKeys() []string {
	day := DayKey{ProfessionalID: d.ProfessionalID, UnitID: d.UnitID, Date: d.Date}.LockKey()
	if d.Date.Weekday() == time.Saturday {
		return []string{UnitDayLockKey(d.UnitID, d.Date), day}
	}
	return []string{day}
}

// Verdict is the result of a conflict check
type Verdict struct {
	Accepted bool
	Kind     ConflictKind
	// Conflicting is set for blocked and occupied
	Conflicting *Booking
	// GridPoint is the hour that reached capacity
	GridPoint *types.TimeString
}

// Accept returns an accepting verdict
func Accept() Verdict {
	return Verdict{Accepted: true}
}

// Reject returns a rejecting verdict
func Reject(kind ConflictKind, conflicting *Booking) Verdict {
	return Verdict{Kind: kind, Conflicting: conflicting}
}

// Err converts a rejecting verdict into a ConflictError, nil when accepted
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	return &ConflictError{Kind: v.Kind, Booking: v.Conflicting, GridPoint: v.GridPoint}
}
