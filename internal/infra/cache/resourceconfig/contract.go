package resourceconfig

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// ResourceSource источник конфигурации ресурса (репозиторий)
type ResourceSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// Store хранилище значений с TTL. Get возвращает ErrCacheMiss, если ключа нет.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
