package get_monthly_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// UseCase use case получения доступных для бронирования дат месяца
type UseCase struct {
	resources       ResourceProvider
	reservationRepo ReservationRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resources ResourceProvider,
	reservationRepo ReservationRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		resources:       resources,
		reservationRepo: reservationRepo,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает доступные даты месяца.
// Бронирования месяца читаются одним запросом и группируются по дням в памяти.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthlyAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetMonthlyAvailability: resource=%d, year=%d, month=%d", req.ResourceID, req.Year, req.Month)

	window, err := domain.MonthWindow(req.Year, time.Month(req.Month))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today := types.DateOf(uc.timeProvider.Now().In(uc.location))

	resource, err := uc.resources.GetByID(ctx, req.ResourceID)
	if errors.Is(err, resourceRepo.ErrResourceNotFound) {
		uc.logger.Warn("GetMonthlyAvailability: resource id=%d not found", req.ResourceID)
		return &Response{Rejection: domain.ResourceNotFound()}, nil
	}
	if err != nil {
		uc.logger.Error("GetMonthlyAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: get resource: %w", ErrTransientFailure, err)
	}

	// Месяц целиком в прошлом: читать бронирования не нужно
	if !window.End.After(today) {
		return &Response{AvailableDates: []types.Date{}}, nil
	}

	reservations, err := uc.reservationRepo.GetByResourceAndPeriod(ctx, domain.ReservationFilter{
		ResourceID: req.ResourceID,
		From:       window.Start,
		To:         window.End,
	})
	if err != nil {
		uc.logger.Error("GetMonthlyAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: get reservations: %w", ErrTransientFailure, err)
	}

	dates := resource.AvailableDates(window, today, domain.CountByDay(reservations))

	uc.logger.Info("GetMonthlyAvailability: resource=%d, %04d-%02d: %d available dates",
		req.ResourceID, req.Year, req.Month, len(dates))

	return &Response{AvailableDates: dates}, nil
}
