package saturday

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/psqlbuilder"
)

var professionalColumns = []string{
	"id",
	"professional_id",
	"unit_id",
	"scope_date",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

var unitColumns = []string{
	"id",
	"unit_id",
	"scope_date",
	"capacity_per_hour",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий субботних настроек специалистов и юнитов
// scope_date IS NULL хранит настройку "каждую субботу", иначе настройку на конкретную дату
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория субботних настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertProfessional создает или обновляет субботние часы специалиста в юните
// Ключ записи (professional_id, unit_id, scope_date)
func (r *Repository) UpsertProfessional(ctx context.Context, cfg *domain.SaturdayProfessionalConfig) (*domain.SaturdayProfessionalConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("saturday_professional_configs").
		Columns("professional_id", "unit_id", "scope_date", "start_time", "end_time", "active").
		Values(cfg.ProfessionalID, cfg.UnitID, scopeValue(cfg.Scope), cfg.Start, cfg.End, cfg.Active).
		Suffix("ON CONFLICT (professional_id, unit_id, scope_date) DO UPDATE SET " +
			"start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, " +
			"active = EXCLUDED.active, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertProfessional - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertProfessional - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// UpsertUnit создает или обновляет субботнюю вместимость юнита
// Ключ записи (unit_id, scope_date)
func (r *Repository) UpsertUnit(ctx context.Context, cfg *domain.SaturdayUnitConfig) (*domain.SaturdayUnitConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("saturday_unit_configs").
		Columns("unit_id", "scope_date", "capacity_per_hour", "active").
		Values(cfg.UnitID, scopeValue(cfg.Scope), cfg.CapacityPerHour, cfg.Active).
		Suffix("ON CONFLICT (unit_id, scope_date) DO UPDATE SET " +
			"capacity_per_hour = EXCLUDED.capacity_per_hour, " +
			"active = EXCLUDED.active, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertUnit - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertUnit - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// ListProfessionalForDate получает настройки специалиста в юните, применимые к дате:
// на конкретную дату и "каждую субботу". Выбор между ними делает движок расписания.
func (r *Repository) ListProfessionalForDate(ctx context.Context, professionalID, unitID int64, date time.Time) ([]domain.SaturdayProfessionalConfig, error) {
	selectBuilder := psqlbuilder.Select(professionalColumns...).
		From("saturday_professional_configs").
		Where(squirrel.Eq{"professional_id": professionalID, "unit_id": unitID}).
		Where(squirrel.Or{
			squirrel.Eq{"scope_date": date},
			squirrel.Eq{"scope_date": nil},
		}).
		OrderBy("id ASC")

	return r.listProfessional(ctx, "ListProfessionalForDate", selectBuilder)
}

// ListProfessional получает настройки с опциональной фильтрацией по специалисту и юниту
func (r *Repository) ListProfessional(ctx context.Context, professionalID, unitID *int64) ([]domain.SaturdayProfessionalConfig, error) {
	selectBuilder := psqlbuilder.Select(professionalColumns...).
		From("saturday_professional_configs")

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}
	if unitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *unitID})
	}

	return r.listProfessional(ctx, "ListProfessional", selectBuilder.OrderBy("id ASC"))
}

// ListUnitForDate получает настройки вместимости юнита, применимые к дате
func (r *Repository) ListUnitForDate(ctx context.Context, unitID int64, date time.Time) ([]domain.SaturdayUnitConfig, error) {
	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("saturday_unit_configs").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Or{
			squirrel.Eq{"scope_date": date},
			squirrel.Eq{"scope_date": nil},
		}).
		OrderBy("id ASC")

	return r.listUnit(ctx, "ListUnitForDate", selectBuilder)
}

// ListUnit получает настройки вместимости с опциональной фильтрацией по юниту
func (r *Repository) ListUnit(ctx context.Context, unitID *int64) ([]domain.SaturdayUnitConfig, error) {
	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("saturday_unit_configs")

	if unitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *unitID})
	}

	return r.listUnit(ctx, "ListUnit", selectBuilder.OrderBy("id ASC"))
}

func (r *Repository) listProfessional(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]domain.SaturdayProfessionalConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	configs := make([]domain.SaturdayProfessionalConfig, 0)
	for rows.Next() {
		var cfg domain.SaturdayProfessionalConfig
		var scopeDate, createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&cfg.ID,
			&cfg.ProfessionalID,
			&cfg.UnitID,
			&scopeDate,
			&cfg.Start,
			&cfg.End,
			&cfg.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		cfg.Scope = scopeFrom(scopeDate)
		cfg.CreatedAt = createdAt.Time
		cfg.UpdatedAt = updatedAt.Time
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return configs, nil
}

func (r *Repository) listUnit(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]domain.SaturdayUnitConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	configs := make([]domain.SaturdayUnitConfig, 0)
	for rows.Next() {
		var cfg domain.SaturdayUnitConfig
		var scopeDate, createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&cfg.ID,
			&cfg.UnitID,
			&scopeDate,
			&cfg.CapacityPerHour,
			&cfg.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		cfg.Scope = scopeFrom(scopeDate)
		cfg.CreatedAt = createdAt.Time
		cfg.UpdatedAt = updatedAt.Time
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return configs, nil
}

// scopeValue NULL для "каждую субботу", иначе дата
func scopeValue(scope domain.DateScope) interface{} {
	if date, ok := scope.Date(); ok {
		return date
	}
	return nil
}

func scopeFrom(scopeDate sql.NullTime) domain.DateScope {
	if scopeDate.Valid {
		return domain.OnDate(scopeDate.Time)
	}
	return domain.Recurring()
}
