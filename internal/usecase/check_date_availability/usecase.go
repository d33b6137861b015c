package check_date_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// UseCase use case проверки доступности ресурса на дату
type UseCase struct {
	resources       ResourceProvider
	reservationRepo ReservationRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location определяет границу "сегодня".
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

// Execute возвращает доступность ресурса на дату.
// Для несуществующего ресурса возвращается {false, 0} без ошибки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckDateAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckDateAvailability: resource=%d, date=%s", req.ResourceID, req.Date)

	today := types.DateOf(uc.timeProvider.Now().In(uc.location))

	resource, err := uc.resources.GetByID(ctx, req.ResourceID)
	if errors.Is(err, resourceRepo.ErrResourceNotFound) {
		uc.logger.Warn("CheckDateAvailability: resource id=%d not found", req.ResourceID)
		return toResponse(domain.Unavailable()), nil
	}
	if err != nil {
		uc.logger.Error("CheckDateAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: get resource: %w", ErrTransientFailure, err)
	}

	// Прошедшие даты и сегодня недоступны, бронирования можно не читать
	if !req.Date.After(today) {
		return toResponse(domain.Unavailable()), nil
	}

	reservations, err := uc.reservationRepo.GetByResourceAndPeriod(ctx, domain.ReservationFilter{
		ResourceID: req.ResourceID,
		From:       req.Date,
		To:         req.Date,
	})
	if err != nil {
		uc.logger.Error("CheckDateAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: get reservations: %w", ErrTransientFailure, err)
	}

	availability := resource.Availability(req.Date, today, len(reservations))

	uc.logger.Info("CheckDateAvailability: resource=%d, date=%s, available=%t, remaining=%d",
		req.ResourceID, req.Date, availability.Available, availability.RemainingCapacity)

	return toResponse(availability), nil
}

func toResponse(a domain.Availability) *Response {
	return &Response{
		Available:         a.Available,
		RemainingCapacity: a.RemainingCapacity,
	}
}
