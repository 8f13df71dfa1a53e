package transition_booking

import (
	"context"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
)

type BookingService interface {
	Transition(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
