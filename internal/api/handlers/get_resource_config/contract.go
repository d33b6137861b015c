package get_resource_config

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/resources/models"
)

type ResourceService interface {
	GetConfig(ctx context.Context, id int64) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
