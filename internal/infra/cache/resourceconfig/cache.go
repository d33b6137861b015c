// Package resourceconfig caches resource configuration in front of the resources repository.
package resourceconfig

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

const keyPrefix = "resource:config:"

type cachedResource struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	TotalCapacity   int       `json:"total_capacity"`
	ExclusivityMode string    `json:"exclusivity_mode"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Cache read-through кеш конфигурации ресурсов.
// Ошибки хранилища кеша не пробрасываются: чтение уходит в источник.
type Cache struct {
	source ResourceSource
	store  Store
	ttl    time.Duration
	logger Logger
}

func NewCache(source ResourceSource, store Store, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByID возвращает ресурс из кеша или из источника, сохраняя его в кеш.
// Ошибки источника (в т.ч. not found) возвращаются без изменений и не кешируются.
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	key := Key(id)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached cachedResource
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			c.logger.Debug("resource config cache hit: id=%d", id)
			return cached.toDomain(), nil
		}
		c.logger.Warn("resource config cache: corrupted entry for id=%d, reloading", id)
	case errors.Is(err, ErrCacheMiss):
		c.logger.Debug("resource config cache miss: id=%d", id)
	default:
		c.logger.Warn("resource config cache: get id=%d failed: %v", id, err)
	}

	res, err := c.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fromDomain(res))
	if err == nil {
		if setErr := c.store.Set(ctx, key, payload, c.ttl); setErr != nil {
			c.logger.Warn("resource config cache: set id=%d failed: %v", id, setErr)
		}
	}

	return res, nil
}

// Invalidate удаляет запись ресурса из кеша
func (c *Cache) Invalidate(ctx context.Context, id int64) error {
	return c.store.Del(ctx, Key(id))
}

// Key ключ записи ресурса в кеше
func Key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func fromDomain(r *domain.Resource) cachedResource {
	return cachedResource{
		ID:              r.ID,
		Name:            r.Name,
		TotalCapacity:   r.TotalCapacity,
		ExclusivityMode: string(r.ExclusivityMode),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (c cachedResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:              c.ID,
		Name:            c.Name,
		TotalCapacity:   c.TotalCapacity,
		ExclusivityMode: domain.ExclusivityMode(c.ExclusivityMode),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
