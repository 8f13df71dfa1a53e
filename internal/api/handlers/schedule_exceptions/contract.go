package schedule_exceptions

import (
	"context"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
)

type ScheduleService interface {
	CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error)
	ListExceptions(ctx context.Context, req *models.ListExceptionsRequest) (*models.ExceptionListResponse, error)
	DeleteException(ctx context.Context, actor domain.Actor, professionalID, exceptionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
