package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки Postgres при срабатывании EXCLUDE constraint
const pgExclusionViolation = "23P01"

// bookingColumns порядок колонок совпадает с порядком полей в scanBooking
var bookingColumns = []string{
	"id",
	"professional_id",
	"unit_id",
	"client_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"booking_type",
	"notes",
	"outstanding_balance",
	"payment_method",
	"installments",
	"conversion_outcome",
	"conversion_original_price",
	"conversion_discount_percent",
	"conversion_final_price",
	"conversion_down_payment",
	"conversion_second_payment",
	"conversion_remaining_due",
	"conversion_closed_by_staff_id",
	"conversion_professional_id",
	"conversion_closing_reasons",
	"conversion_amount_paid",
	"conversion_non_closing_reason",
	"conversion_payment_method",
	"conversion_installments",
	"conversion_balance_before",
	"conversion_recorded_at",
	"version",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование или блокировку
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Пересечение с активной записью, пойманное exclusion constraint, возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.Conversion.Outcome == "" {
		booking.Conversion = domain.EmptyConversion()
	}

	insertColumns := bookingColumns[1 : len(bookingColumns)-3]
	values := append(scheduleValues(booking), conversionValues(booking)...)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(insertColumns...).
		Values(values...).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - professional_id=%d unit_id=%d: %v",
				ErrOverlap, booking.ProfessionalID, booking.UnitID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Специалисту и юниту (ProfessionalID, UnitID) - опционально
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению отмененных бронирований (IncludeCancelled)
//
// Пример, все записи специалиста на дату:
//
//	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
//	filter := domain.BookingsFilter{ProfessionalID: &id, StartDate: &date, EndDate: &date}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *filter.UnitID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		cancelled := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			cancelled[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": cancelled})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListUnitDay получает все записи юнита на дату (по всем специалистам, включая отмененные)
// Внутри транзакции строки блокируются (FOR UPDATE), снимок дня не меняется до коммита
func (r *Repository) ListUnitDay(ctx context.Context, unitID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"unit_id": unitID, "booking_date": date}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnitDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnitDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// LockKey берет транзакционный advisory lock по ключу
// Lock освобождается при коммите или откате, вне транзакции вызов бесполезен
func (r *Repository) LockKey(ctx context.Context, key string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockKey - key=%s: %v", ErrLockDay, key, err)
	}

	return nil
}

// Update перезаписывает поля расписания и оплаты записи
// Версия должна совпадать с booking.Version, после записи booking.Version увеличивается
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("professional_id", booking.ProfessionalID).
		Set("unit_id", booking.UnitID).
		Set("client_id", booking.ClientID).
		Set("booking_date", booking.BookingDate).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("status", booking.Status).
		Set("booking_type", booking.Type).
		Set("notes", booking.Notes).
		Set("outstanding_balance", booking.OutstandingBalance).
		Set("payment_method", booking.PaymentMethod).
		Set("installments", booking.Installments)

	return r.updateVersioned(ctx, "Update", booking, updateBuilder)
}

// UpdateStatus обновляет статус записи с проверкой версии
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", booking.Status)

	return r.updateVersioned(ctx, "UpdateStatus", booking, updateBuilder)
}

// UpdateConversion записывает запись о конверсии, баланс и статус с проверкой версии
func (r *Repository) UpdateConversion(ctx context.Context, booking *domain.Booking) error {
	c := booking.Conversion

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("outstanding_balance", booking.OutstandingBalance).
		Set("conversion_outcome", c.Outcome).
		Set("conversion_original_price", c.OriginalPrice).
		Set("conversion_discount_percent", c.DiscountPercent).
		Set("conversion_final_price", c.FinalPrice).
		Set("conversion_down_payment", c.DownPayment).
		Set("conversion_second_payment", c.SecondPayment).
		Set("conversion_remaining_due", c.RemainingDue).
		Set("conversion_closed_by_staff_id", c.ClosedByStaffID).
		Set("conversion_professional_id", c.ProfessionalID).
		Set("conversion_closing_reasons", pq.Array(reasonsOrEmpty(c.ClosingReasons))).
		Set("conversion_amount_paid", c.AmountPaid).
		Set("conversion_non_closing_reason", c.NonClosingReason).
		Set("conversion_payment_method", c.PaymentMethod).
		Set("conversion_installments", c.Installments).
		Set("conversion_balance_before", c.BalanceBefore).
		Set("conversion_recorded_at", c.RecordedAt)

	return r.updateVersioned(ctx, "UpdateConversion", booking, updateBuilder)
}

// Delete удаляет запись (физическое удаление)
// Для блокировок это "разблокировка" интервала
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
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
		return ErrBookingNotFound
	}

	return nil
}

// updateVersioned выполняет UPDATE с optimistic lock по колонке version
func (r *Repository) updateVersioned(ctx context.Context, op string, booking *domain.Booking, updateBuilder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateBuilder.
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": booking.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s - booking_id=%d version=%d", ErrVersionMismatch, op, booking.ID, booking.Version)
	}
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: %s - booking_id=%d: %v", ErrOverlap, op, booking.ID, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	booking.UpdatedAt = updatedAt.Time

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	c := &booking.Conversion

	err := row.Scan(
		&booking.ID,
		&booking.ProfessionalID,
		&booking.UnitID,
		&booking.ClientID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Type,
		&booking.Notes,
		&booking.OutstandingBalance,
		&booking.PaymentMethod,
		&booking.Installments,
		&c.Outcome,
		&c.OriginalPrice,
		&c.DiscountPercent,
		&c.FinalPrice,
		&c.DownPayment,
		&c.SecondPayment,
		&c.RemainingDue,
		&c.ClosedByStaffID,
		&c.ProfessionalID,
		pq.Array(&c.ClosingReasons),
		&c.AmountPaid,
		&c.NonClosingReason,
		&c.PaymentMethod,
		&c.Installments,
		&c.BalanceBefore,
		&c.RecordedAt,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scheduleValues(b *domain.Booking) []interface{} {
	return []interface{}{
		b.ProfessionalID,
		b.UnitID,
		b.ClientID,
		b.BookingDate,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.Type,
		b.Notes,
		b.OutstandingBalance,
		b.PaymentMethod,
		b.Installments,
	}
}

func conversionValues(b *domain.Booking) []interface{} {
	c := b.Conversion
	return []interface{}{
		c.Outcome,
		c.OriginalPrice,
		c.DiscountPercent,
		c.FinalPrice,
		c.DownPayment,
		c.SecondPayment,
		c.RemainingDue,
		c.ClosedByStaffID,
		c.ProfessionalID,
		pq.Array(reasonsOrEmpty(c.ClosingReasons)),
		c.AmountPaid,
		c.NonClosingReason,
		c.PaymentMethod,
		c.Installments,
		c.BalanceBefore,
		c.RecordedAt,
	}
}

func reasonsOrEmpty(reasons []string) []string {
	if reasons == nil {
		return []string{}
	}
	return reasons
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}
