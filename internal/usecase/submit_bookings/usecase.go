package submit_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// UseCase use case бронирования набора дат
type UseCase struct {
	resourceRepo    ResourceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	location        *time.Location
	maxDates        int
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil.
func NewUseCase(
	resourceRepo ResourceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	location *time.Location,
	maxDates int,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		location:        location,
		maxDates:        maxDates,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute бронирует все даты запроса или ни одной.
//
// Весь набор дат обрабатывается в одной сериализуемой транзакции: для каждой даты
// по порядку проверяется, что занимающий её ещё не держит, и пересчитывается
// доступность по заблокированным строкам дня. Первый отказ откатывает транзакцию
// и возвращается в Response.Rejection. Конфликт сериализации повторяет транзакцию
// на свежих данных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	dates, err := validateRequest(req, uc.maxDates)
	if err != nil {
		uc.logger.Warn("SubmitBookings: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitBookings: resource=%d, occupant=%d, dates=%v", req.ResourceID, req.OccupantID, dates)

	var (
		created   []domain.Reservation
		rejection *domain.Rejection
		mode      domain.ExclusivityMode
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может повторяться, результат прошлой попытки сбрасываем
		created = make([]domain.Reservation, 0, len(dates))
		rejection = nil

		today := types.DateOf(uc.timeProvider.Now().In(uc.location))

		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			rejection = domain.ResourceNotFound()
			return errBatchRejected
		}
		if err != nil {
			return fmt.Errorf("%w: get resource: %w", ErrTransientFailure, err)
		}
		mode = resource.ExclusivityMode

		for _, date := range dates {
			reservations, err := uc.reservationRepo.GetByResourceAndPeriod(txCtx, domain.ReservationFilter{
				ResourceID: req.ResourceID,
				From:       date,
				To:         date,
			})
			if err != nil {
				return fmt.Errorf("%w: get reservations on %s: %w", ErrTransientFailure, date, err)
			}

			if domain.HeldBy(reservations, req.OccupantID) {
				rejection = domain.AlreadyBooked(date)
				return errBatchRejected
			}

			availability := resource.Availability(date, today, len(reservations))
			if !availability.Available {
				rejection = domain.DateUnavailable(date)
				return errBatchRejected
			}

			reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
				ResourceID: req.ResourceID,
				OccupantID: req.OccupantID,
				Date:       date,
			})
			if errors.Is(err, reservationRepo.ErrDuplicateReservation) {
				rejection = domain.AlreadyBooked(date)
				return errBatchRejected
			}
			if err != nil {
				return fmt.Errorf("%w: create reservation on %s: %w", ErrTransientFailure, date, err)
			}

			created = append(created, *reservation)
		}

		return nil
	})

	if errors.Is(err, errBatchRejected) {
		uc.logger.Warn("SubmitBookings: resource=%d, occupant=%d rejected: %s",
			req.ResourceID, req.OccupantID, rejection)
		uc.metrics.BookingRejected(string(rejection.Reason))
		return &Response{Rejection: rejection}, nil
	}
	if err != nil {
		uc.logger.Error("SubmitBookings: resource=%d, occupant=%d failed: %v", req.ResourceID, req.OccupantID, err)
		if errors.Is(err, ErrTransientFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrTransientFailure, err)
	}

	uc.metrics.ReservationsCreated(string(mode), len(created))
	uc.logger.Info("SubmitBookings: resource=%d, occupant=%d, created %d reservations",
		req.ResourceID, req.OccupantID, len(created))

	return &Response{Created: created}, nil
}
