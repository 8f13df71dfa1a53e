package exception

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

// Repository репозиторий исключений из рабочего графика специалиста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает исключение (отпуск, обед или особые часы)
// Для отпуска start_time и end_time пишутся как NULL
func (r *Repository) Create(ctx context.Context, exception *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"professional_id",
			"exception_date",
			"kind",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			exception.ProfessionalID,
			exception.Date,
			exception.Kind,
			exception.Start,
			exception.End,
			exception.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exception.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	exception.CreatedAt = createdAt.Time

	return exception, nil
}

// ListByProfessional получает исключения специалиста за период [from, to] включительно
// Сортировка по дате и id: последний созданный идет последним
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"exception_date",
		"kind",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("schedule_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		Where(squirrel.LtOrEq{"exception_date": to}).
		OrderBy("exception_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.ScheduleException, 0)
	for rows.Next() {
		var e domain.ScheduleException
		var createdAt sql.NullTime

		if err := rows.Scan(
			&e.ID,
			&e.ProfessionalID,
			&e.Date,
			&e.Kind,
			&e.Start,
			&e.End,
			&e.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByProfessional - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// ListForDate получает все исключения специалиста на дату
func (r *Repository) ListForDate(ctx context.Context, professionalID int64, date time.Time) ([]domain.ScheduleException, error) {
	return r.ListByProfessional(ctx, professionalID, date, date)
}

// Delete удаляет исключение специалиста
func (r *Repository) Delete(ctx context.Context, professionalID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}
