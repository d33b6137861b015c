package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/psqlbuilder"
)

const (
	tableName = "reservations"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"resource_id",
	"occupant_id",
	"reservation_date",
	"created_at",
}

// Repository репозиторий для работы с бронированиями ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникальности (resource_id, reservation_date, occupant_id) возвращается как ErrDuplicateReservation.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("resource_id", "occupant_id", "reservation_date").
		Values(reservation.ResourceID, reservation.OccupantID, reservation.Date).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created := *reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: Create - resource=%d date=%s occupant=%d",
				ErrDuplicateReservation, reservation.ResourceID, reservation.Date, reservation.OccupantID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.ResourceID,
		&reservation.OccupantID,
		&reservation.Date,
		&reservation.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return &reservation, nil
}

// GetByResourceAndPeriod получает бронирования ресурса за период [From, To].
//
// Внутри транзакции для одного дня строки блокируются (FOR UPDATE):
// так usecase бронирования пересчитывает занятость, не пересекаясь с конкурентами на ту же дату.
// Для месяца блокировка не нужна - это read-only проекция.
func (r *Repository) GetByResourceAndPeriod(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"resource_id": filter.ResourceID}).
		Where(squirrel.GtOrEq{"reservation_date": filter.From}).
		Where(squirrel.LtOrEq{"reservation_date": filter.To})

	if filter.OccupantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"occupant_id": *filter.OccupantID})
	}

	selectBuilder = selectBuilder.OrderBy("reservation_date ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.From.Equal(filter.To) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndPeriod - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndPeriod - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByOccupant получает историю бронирований занимающего, новые даты первыми.
// С filter.After возвращаются только даты строго позже него.
func (r *Repository) GetByOccupant(ctx context.Context, filter domain.OccupantFilter) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"occupant_id": filter.OccupantID})

	if filter.After != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"reservation_date": *filter.After})
	}

	query, args, err := selectBuilder.
		OrderBy("reservation_date DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOccupant - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOccupant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Delete удаляет бронирование (физическое удаление: бронирования не изменяются на месте)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation

		err := rows.Scan(
			&reservation.ID,
			&reservation.ResourceID,
			&reservation.OccupantID,
			&reservation.Date,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}

		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
