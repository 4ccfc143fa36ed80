package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/psqlbuilder"
)

const (
	bookingsTable = "bookings"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
	uniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"reference",
	"host_id",
	"client_id",
	"session_date",
	"start_time",
	"duration_minutes",
	"add_ons",
	"base_price",
	"add_on_total",
	"total",
	"commission",
	"tax",
	"host_payout",
	"payment_id",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет оплаченное бронирование
// Повторная запись с тем же reference возвращает ErrDuplicateReference
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"reference",
			"host_id",
			"client_id",
			"session_date",
			"start_time",
			"duration_minutes",
			"add_ons",
			"base_price",
			"add_on_total",
			"total",
			"commission",
			"tax",
			"host_payout",
			"payment_id",
			"status",
		).
		Values(
			booking.Reference,
			booking.HostID,
			booking.ClientID,
			booking.SessionDate,
			booking.StartTime,
			booking.DurationMinutes,
			pq.Array(addOnStrings(booking.AddOns)),
			booking.Charge.BasePrice,
			booking.Charge.AddOnTotal,
			booking.Charge.Total,
			booking.Charge.Commission,
			booking.Charge.Tax,
			booking.Charge.HostPayout,
			booking.PaymentID,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, booking.Reference)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// GetByReference получает бронирование по публичному идентификатору
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// GetByClientID получает бронирования клиента, опционально по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"client_id": clientID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.
		OrderBy("session_date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByHostWithFilter получает бронирования хоста с фильтрацией по периоду и статусу
// Без статуса и IncludeInactive отменённые и no-show исключаются
func (r *Repository) GetByHostWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"host_id": filter.HostID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"session_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"session_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	// Для одной даты сортируем по времени, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("session_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var addOns []string
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.HostID,
			&booking.ClientID,
			&booking.SessionDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			pq.Array(&addOns),
			&booking.Charge.BasePrice,
			&booking.Charge.AddOnTotal,
			&booking.Charge.Total,
			&booking.Charge.Commission,
			&booking.Charge.Tax,
			&booking.Charge.HostPayout,
			&booking.PaymentID,
			&booking.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.AddOns = make([]domain.AddOn, 0, len(addOns))
		for _, a := range addOns {
			booking.AddOns = append(booking.AddOns, domain.AddOn(a))
		}
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func addOnStrings(addOns []domain.AddOn) []string {
	result := make([]string, 0, len(addOns))
	for _, a := range addOns {
		result = append(result, string(a))
	}
	return result
}
