package domain

import (
	"time"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// Professional is a clinician with default working hours. Read-only to the scheduler.
type Professional struct {
	ID           int64
	Name         string
	DefaultStart types.TimeString
	DefaultEnd   types.TimeString
	Active       bool
}

// Unit is a physical clinic location
type Unit struct {
	ID   int64
	Name string
}

// ExceptionKind distinguishes date-specific overrides of working hours
type ExceptionKind string

const (
	// ExceptionLeave makes the whole day unavailable
	ExceptionLeave ExceptionKind = "leave"
	// ExceptionLunch carves a sub-interval out of the window
	ExceptionLunch ExceptionKind = "lunch"
	// ExceptionCustom replaces the working window
	ExceptionCustom ExceptionKind = "custom"
)

// IsValid reports whether the kind is one of the known values
func (k ExceptionKind) IsValid() bool {
	return k == ExceptionLeave || k == ExceptionLunch || k == ExceptionCustom
}

// ScheduleException is a date-specific override for a professional.
// Start and End are empty for leave.
type ScheduleException struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	Kind           ExceptionKind
	Start          types.TimeString
	End            types.TimeString
	Reason         *string
	CreatedAt      time.Time
}

// Interval returns the override interval. Meaningless for leave.
func (e *ScheduleException) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// DateScope selects which Saturdays a config row applies to: every Saturday or one date
type DateScope struct {
	date     time.Time
	specific bool
}

// Recurring returns a scope matching every Saturday
func Recurring() DateScope {
	return DateScope{}
}

// OnDate returns a scope matching a single date
func OnDate(date time.Time) DateScope {
	y, m, d := date.Date()
	return DateScope{date: time.Date(y, m, d, 0, 0, 0, 0, date.Location()), specific: true}
}

// IsRecurring returns true for the every-Saturday scope
func (s DateScope) IsRecurring() bool {
	return !s.specific
}

// Date returns the date of an OnDate scope
func (s DateScope) Date() (time.Time, bool) {
	return s.date, s.specific
}

// Matches reports whether the scope applies to the given date
func (s DateScope) Matches(date time.Time) bool {
	if !s.specific {
		return true
	}
	return SameDay(s.date, date)
}

// String returns "recurring" or the date in DateFormat
func (s DateScope) String() string {
	if !s.specific {
		return "recurring"
	}
	return s.date.Format(DateFormat)
}

// SaturdayProfessionalConfig overrides a professional's Saturday hours at a unit
type SaturdayProfessionalConfig struct {
	ID             int64
	ProfessionalID int64
	UnitID         int64
	Scope          DateScope
	Start          types.TimeString
	End            types.TimeString
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaturdayUnitConfig caps simultaneous occupancy per hour for a unit on Saturdays
type SaturdayUnitConfig struct {
	ID              int64
	UnitID          int64
	Scope           DateScope
	CapacityPerHour int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SameDay reports whether two times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
