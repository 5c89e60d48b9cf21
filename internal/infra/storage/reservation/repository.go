package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/pkg/dbmetrics"
	"github.com/lamesa/LaMesa-ReservationService/pkg/psqlbuilder"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// pgUniqueViolation это SQLSTATE 23505
const pgUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"confirmation_code",
	"customer_email",
	"customer_name",
	"guests",
	"service",
	"notes",
	"date",
	"time",
	"schedule_slot_id",
	"booked",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями столиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
// Частичный уникальный индекс на (date, time) WHERE booked гарантирует
// отсутствие двойных броней даже при гонке двух запросов: проигравшая
// вставка получает 23505, который маппится в ErrDuplicateSlot
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"confirmation_code",
			"customer_email",
			"customer_name",
			"guests",
			"service",
			"notes",
			"date",
			"time",
			"schedule_slot_id",
			"booked",
		).
		Values(
			res.ConfirmationCode,
			res.CustomerEmail,
			res.CustomerName,
			res.Guests,
			res.Service,
			res.Notes,
			res.Date,
			res.Time,
			res.ScheduleSlotID,
			res.Booked,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanReservation(executor.QueryRowContext(ctx, query, args...))
}

// GetByIDAndEmail получает бронь по паре (id, email)
// Единый запрос: репозиторий не различает "нет такого id" и "email не
// совпал", чтобы вызывающий код не мог раскрыть существование чужих броней
func (r *Repository) GetByIDAndEmail(ctx context.Context, id int64, email string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "customer_email": email})

	// В транзакции блокируем строку, т.к. за авторизацией следует мутация
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndEmail - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanReservation(executor.QueryRowContext(ctx, query, args...))
}

// List получает брони, опционально фильтруя по дате
func (r *Repository) List(ctx context.Context, date *time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("date ASC, time ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetBookedTimes получает времена активных броней на дату
// Используется резолвером доступности для вычитания занятых слотов
func (r *Repository) GetBookedTimes(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("time").
		From("reservations").
		Where(squirrel.Eq{"date": date, "booked": true}).
		OrderBy("time ASC")

	// Внутри транзакции создания брони блокируем строки даты (FOR UPDATE),
	// чтобы параллельная запись на тот же слот сериализовалась
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ExistsBookedAt проверяет наличие активной брони на (date, time)
func (r *Repository) ExistsBookedAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"date": date, "time": t, "booked": true}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBookedAt - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBookedAt - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Update применяет частичный патч полей брони
// Nil-поля патча не затрагиваются; смена (date, time) может получить 23505
// от уникального индекса - маппится в ErrDuplicateSlot
func (r *Repository) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Service != nil {
		updateBuilder = updateBuilder.Set("service", *patch.Service)
	}
	if patch.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *patch.Notes)
	}
	if patch.Date != nil {
		updateBuilder = updateBuilder.Set("date", *patch.Date)
	}
	if patch.Time != nil {
		updateBuilder = updateBuilder.Set("time", *patch.Time)
	}
	if patch.ScheduleSlotID != nil {
		updateBuilder = updateBuilder.Set("schedule_slot_id", *patch.ScheduleSlotID)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}

	return res, nil
}

// Delete физически удаляет бронь
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// scanReservation сканирует одну строку результата
func (r *Repository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ConfirmationCode,
		&res.CustomerEmail,
		&res.CustomerName,
		&res.Guests,
		&res.Service,
		&res.Notes,
		&res.Date,
		&res.Time,
		&res.ScheduleSlotID,
		&res.Booked,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanReservation - scan row: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.ConfirmationCode,
			&res.CustomerEmail,
			&res.CustomerName,
			&res.Guests,
			&res.Service,
			&res.Notes,
			&res.Date,
			&res.Time,
			&res.ScheduleSlotID,
			&res.Booked,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
