package complete_booking

import (
	"context"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
)

type BookingService interface {
	CompleteFromClinicalNote(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
