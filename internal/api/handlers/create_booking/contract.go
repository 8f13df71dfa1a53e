package create_booking

import (
	"context"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	createBooking "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
