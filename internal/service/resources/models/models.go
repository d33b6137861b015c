package models

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// UpsertResourceRequest запрос на создание или обновление конфигурации ресурса.
// Режим задаётся явно (ExclusivityMode) или выводится из типологии пространства (Typology).
type UpsertResourceRequest struct {
	ResourceID      int64
	Name            string
	TotalCapacity   int
	ExclusivityMode *string // per_unit | whole_resource
	Typology        *string // MEETING_ROOMS -> whole_resource, остальные -> per_unit
}

// ResourceResponse конфигурация ресурса
type ResourceResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	TotalCapacity     int       `json:"totalCapacity"`
	ExclusivityMode   string    `json:"exclusivityMode"`
	EffectiveCapacity int       `json:"effectiveCapacity"` // сколько бронирований помещается в день
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:                r.ID,
		Name:              r.Name,
		TotalCapacity:     r.TotalCapacity,
		ExclusivityMode:   string(r.ExclusivityMode),
		EffectiveCapacity: r.EffectiveCapacity(),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
