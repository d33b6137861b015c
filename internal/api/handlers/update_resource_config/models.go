package update_resource_config

import (
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/resources/models"
)

// UpdateResourceConfigRequest HTTP request model.
// Нужен либо exclusivityMode, либо typology.
type UpdateResourceConfigRequest struct {
	Name            string  `json:"name" validate:"max=255"`
	TotalCapacity   int     `json:"totalCapacity" validate:"required,min=1,max=10000"`
	ExclusivityMode *string `json:"exclusivityMode,omitempty" validate:"required_without=Typology,omitempty,oneofci=per_unit whole_resource"`
	Typology        *string `json:"typology,omitempty" validate:"required_without=ExclusivityMode,omitempty,min=1"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateResourceConfigRequest) ToServiceRequest(resourceID int64) *models.UpsertResourceRequest {
	return &models.UpsertResourceRequest{
		ResourceID:      resourceID,
		Name:            r.Name,
		TotalCapacity:   r.TotalCapacity,
		ExclusivityMode: r.ExclusivityMode,
		Typology:        r.Typology,
	}
}
