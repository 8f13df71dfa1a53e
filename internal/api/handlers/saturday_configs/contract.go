package saturday_configs

import (
	"context"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules/models"
)

type ScheduleService interface {
	UpsertSaturdayProfessional(ctx context.Context, req *models.UpsertSaturdayProfessionalRequest) (*models.SaturdayProfessionalResponse, error)
	ListSaturdayProfessional(ctx context.Context, professionalID, unitID *int64) (*models.SaturdayProfessionalListResponse, error)
	UpsertSaturdayUnit(ctx context.Context, req *models.UpsertSaturdayUnitRequest) (*models.SaturdayUnitResponse, error)
	ListSaturdayUnit(ctx context.Context, unitID *int64) (*models.SaturdayUnitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
