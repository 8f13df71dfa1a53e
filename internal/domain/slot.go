package domain

import "github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"

// SlotState is the label of a grid slot in the day schedule
type SlotState string

const (
	SlotFree     SlotState = "free"
	SlotOccupied SlotState = "occupied"
	SlotBlocked  SlotState = "blocked"
	SlotLunch    SlotState = "lunch"
	SlotClosed   SlotState = "closed"
	SlotFull     SlotState = "full"
)

// DaySlot represents one grid slot of a professional's day
type DaySlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	State     SlotState
	// BookingID references the booking or block occupying the slot
	BookingID *int64
}

// IsBookable returns true if the slot can take a new appointment
func (s *DaySlot) IsBookable() bool {
	return s.State == SlotFree
}
