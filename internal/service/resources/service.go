package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/resources/models"
)

// Service сервис конфигурации ресурсов
type Service struct {
	resourceRepo ResourceRepository
	cache        ConfigCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, cache ConfigCache, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetConfig возвращает вместимость и режим ресурса
func (s *Service) GetConfig(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	s.logger.Info("GetConfig: fetching resource id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	resource, err := s.cache.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetConfig: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetConfig: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainResource(resource), nil
}

// Upsert создает или обновляет конфигурацию ресурса и сбрасывает её в кеше
func (s *Service) Upsert(ctx context.Context, req *models.UpsertResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Upsert: resource id=%d, capacity=%d", req.ResourceID, req.TotalCapacity)

	resource, err := toDomainResource(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed for resource id=%d: %v", req.ResourceID, err)
		return nil, err
	}

	saved, err := s.resourceRepo.Upsert(ctx, resource)
	if err != nil {
		s.logger.Error("Upsert: repository error for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.Invalidate(ctx, saved.ID); err != nil {
		// запись живёт не дольше TTL
		s.logger.Warn("Upsert: failed to invalidate cache for resource id=%d: %v", saved.ID, err)
	}

	s.logger.Info("Upsert: resource id=%d saved, mode=%s, capacity=%d",
		saved.ID, saved.ExclusivityMode, saved.TotalCapacity)
	return models.FromDomainResource(saved), nil
}

func toDomainResource(req *models.UpsertResourceRequest) (*domain.Resource, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.TotalCapacity < domain.MinTotalCapacity || req.TotalCapacity > domain.MaxTotalCapacity {
		return nil, fmt.Errorf("%w: totalCapacity must be in %d..%d",
			ErrInvalidInput, domain.MinTotalCapacity, domain.MaxTotalCapacity)
	}

	var mode domain.ExclusivityMode
	switch {
	case req.ExclusivityMode != nil:
		parsed, err := domain.ParseExclusivityMode(*req.ExclusivityMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		mode = parsed
	case req.Typology != nil && strings.TrimSpace(*req.Typology) != "":
		mode = domain.ModeForTypology(*req.Typology)
	default:
		return nil, fmt.Errorf("%w: exclusivityMode or typology is required", ErrInvalidInput)
	}

	resource := &domain.Resource{
		ID:              req.ResourceID,
		Name:            strings.TrimSpace(req.Name),
		TotalCapacity:   req.TotalCapacity,
		ExclusivityMode: mode,
	}
	if err := resource.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return resource, nil
}
