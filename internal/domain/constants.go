package domain

// Roles set by the gateway in X-User-Role
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Default configuration values
const (
	DefaultSlotMinutes = 60
	DefaultViewStart   = "08:00"
	DefaultViewEnd     = "18:00"
)

// Business validation constants
const (
	MinSlotMinutes     = 5
	MaxSlotMinutes     = 240
	MinCapacityPerHour = 1
	MaxCapacityPerHour = 100
	MaxNotesLength     = 1000
	MaxReasonLength    = 500
	MaxClosingReasons  = 20
	MaxInstallments    = 48
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses статусы, исключаемые из списков по умолчанию
var CancelledStatuses = []BookingStatus{
	StatusCancelled,
}

// NonOccupyingStatuses статусы, которые не занимают слот при проверке пересечений и вместимости
var NonOccupyingStatuses = []BookingStatus{
	StatusCancelled,
	StatusBlock,
}
