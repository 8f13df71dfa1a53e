package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "agendado"
	StatusConfirmed BookingStatus = "confirmado"
	StatusNoShow    BookingStatus = "ausencia"
	StatusCancelled BookingStatus = "cancelado"
	StatusCompleted BookingStatus = "concluido"
	// StatusBlock marks a synthetic entry that removes availability. It never transitions.
	StatusBlock BookingStatus = "bloqueio"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusNoShow, StatusCancelled, StatusCompleted, StatusBlock:
		return true
	}
	return false
}

// BookingType represents the kind of appointment
type BookingType string

const (
	TypeConsultation BookingType = "consulta"
	TypePackage      BookingType = "pacote"
	TypeSingle       BookingType = "avulsa"
	TypeReturn       BookingType = "retorno"
	TypeAssessment   BookingType = "avaliacao"
)

// IsValid reports whether the type is one of the known values
func (t BookingType) IsValid() bool {
	switch t {
	case TypeConsultation, TypePackage, TypeSingle, TypeReturn, TypeAssessment:
		return true
	}
	return false
}

// Booking represents an appointment or an administrative block for a professional at a unit
type Booking struct {
	ID             int64
	ProfessionalID int64
	UnitID         int64
	ClientID       *int64 // nil for blocks
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus
	Type           BookingType
	Notes          *string

	// OutstandingBalance is the amount the client still owes (falta_quanto). Negative means overpayment.
	OutstandingBalance decimal.Decimal
	PaymentMethod      *string
	Installments       *int

	Conversion Conversion

	// Version is incremented on every write and used for optimistic concurrency
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the half-open [start, end) interval of the booking
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsBlock returns true for administrative blocks
func (b *Booking) IsBlock() bool {
	return b.Status == StatusBlock
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OccupiesSlot returns true if the booking counts for overlap and capacity checks.
// No-shows keep occupying the slot.
func (b *Booking) OccupiesSlot() bool {
	return !slices.Contains(NonOccupyingStatuses, b.Status)
}

// IsTerminal returns true for statuses that accept no further workflow transitions
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusNoShow || b.Status == StatusCompleted
}

// DayKey identifies the set of bookings that must not overlap
type DayKey struct {
	ProfessionalID int64
	UnitID         int64
	Date           time.Time
}

// LockKey returns the key serializing writes for the day of a professional at a unit
func (k DayKey) LockKey() string {
	return fmt.Sprintf("agenda:day:%d:%d:%s", k.ProfessionalID, k.UnitID, k.Date.Format(DateFormat))
}

// UnitDayLockKey returns the key serializing Saturday capacity checks of a unit
func UnitDayLockKey(unitID int64, date time.Time) string {
	return fmt.Sprintf("agenda:unit:%d:%s", unitID, date.Format(DateFormat))
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	ProfessionalID   *int64
	UnitID           *int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	IncludeCancelled bool // Включать ли отмененные бронирования
}
