package domain

// Actor is the caller identity passed down from the gateway headers
type Actor struct {
	UserID int64
	Role   string
}

// IsAdmin returns true for privileged actors allowed to manage blocks and schedules
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
