package resources

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов (запись)
type ResourceRepository interface {
	Upsert(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
}

// ConfigCache кеш конфигурации ресурсов (чтение и инвалидация)
type ConfigCache interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	Invalidate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
