package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location задаёт зону, в которой определяется "сегодня" для предстоящих бронирований.
func NewService(reservationRepo ReservationRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByOccupant получает историю бронирований занимающего, новые даты первыми.
// С UpcomingOnly возвращаются только даты после сегодняшней.
func (s *Service) ListByOccupant(ctx context.Context, req *models.ListByOccupantRequest) (*models.ReservationListResponse, error) {
	if req == nil || req.OccupantID <= 0 {
		return nil, fmt.Errorf("%w: occupantID must be positive", ErrInvalidInput)
	}

	s.logger.Info("ListByOccupant: fetching reservations of occupant=%d, upcoming_only=%t", req.OccupantID, req.UpcomingOnly)

	filter := domain.OccupantFilter{OccupantID: req.OccupantID}
	if req.UpcomingOnly {
		today := types.DateOf(s.timeProvider.Now().In(s.location))
		filter.After = &today
	}

	list, err := s.reservationRepo.GetByOccupant(ctx, filter)
	if err != nil {
		s.logger.Error("ListByOccupant: repository error for occupant=%d: %v", req.OccupantID, err)
		return nil, fmt.Errorf("%w: ListByOccupant - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByOccupant: fetched %d reservations of occupant=%d", len(list), req.OccupantID)
	return models.FromDomainReservationList(list), nil
}

// Cancel удаляет бронирование. Бронирования не изменяются на месте, отмена - это удаление.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}
