package booking_conversion

import (
	"context"

	bookingModels "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
)

type ConversionService interface {
	Record(ctx context.Context, bookingID int64, req *models.RecordConversionRequest) (*bookingModels.BookingResponse, error)
	Clear(ctx context.Context, bookingID int64, req *models.ClearConversionRequest) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
