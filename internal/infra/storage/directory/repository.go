package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/psqlbuilder"
)

// Repository справочник специалистов и юнитов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfessional получает специалиста по ID
func (r *Repository) GetProfessional(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "default_start", "default_end", "active").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.DefaultStart,
		&p.DefaultEnd,
		&p.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetUnit получает юнит по ID
func (r *Repository) GetUnit(ctx context.Context, id int64) (*domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("units").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnit - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.Unit
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnit - scan unit: %v", ErrScanRow, err)
	}

	return &u, nil
}

// IsAssigned проверяет, что специалист привязан к юниту
func (r *Repository) IsAssigned(ctx context.Context, professionalID, unitID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("professional_units").
		Where(squirrel.Eq{"professional_id": professionalID, "unit_id": unitID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}
