package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/resources/models"
	"github.com/m04kA/SMC-SpaceBookingService/internal/testutil/memdb"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// trackingCache читает напрямую из memdb и запоминает инвалидации
type trackingCache struct {
	source      *memdb.ResourceRepo
	invalidated []int64
}

func (c *trackingCache) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	return c.source.GetByID(ctx, id)
}

func (c *trackingCache) Invalidate(_ context.Context, id int64) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newService() (*Service, *memdb.Store, *trackingCache) {
	store := memdb.New()
	cache := &trackingCache{source: store.Resources()}
	return NewService(store.Resources(), cache, nopLogger{}), store, cache
}

func strPtr(s string) *string { return &s }

func TestUpsert_ExplicitMode(t *testing.T) {
	svc, _, cache := newService()

	resp, err := svc.Upsert(context.Background(), &models.UpsertResourceRequest{
		ResourceID:      7,
		Name:            " Open space ",
		TotalCapacity:   12,
		ExclusivityMode: strPtr("PER_UNIT"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Open space", resp.Name)
	assert.Equal(t, "per_unit", resp.ExclusivityMode)
	assert.Equal(t, 12, resp.EffectiveCapacity)
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestUpsert_TypologyMapping(t *testing.T) {
	svc, _, _ := newService()

	meeting, err := svc.Upsert(context.Background(), &models.UpsertResourceRequest{
		ResourceID:    1,
		TotalCapacity: 10,
		Typology:      strPtr("MEETING_ROOMS"),
	})
	require.NoError(t, err)
	assert.Equal(t, "whole_resource", meeting.ExclusivityMode)
	assert.Equal(t, 1, meeting.EffectiveCapacity)

	desks, err := svc.Upsert(context.Background(), &models.UpsertResourceRequest{
		ResourceID:    2,
		TotalCapacity: 10,
		Typology:      strPtr("OPEN_SPACE"),
	})
	require.NoError(t, err)
	assert.Equal(t, "per_unit", desks.ExclusivityMode)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Upsert(context.Background(), &models.UpsertResourceRequest{
		ResourceID: 1, TotalCapacity: 4, ExclusivityMode: strPtr("per_unit"),
	})
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), &models.UpsertResourceRequest{
		ResourceID: 1, TotalCapacity: 6, ExclusivityMode: strPtr("whole_resource"),
	})
	require.NoError(t, err)

	resp, err := svc.GetConfig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.TotalCapacity)
	assert.Equal(t, "whole_resource", resp.ExclusivityMode)
}

func TestUpsert_InvalidInput(t *testing.T) {
	svc, _, cache := newService()

	for name, req := range map[string]*models.UpsertResourceRequest{
		"unknown mode":   {ResourceID: 1, TotalCapacity: 1, ExclusivityMode: strPtr("hourly")},
		"zero capacity":  {ResourceID: 1, TotalCapacity: 0, ExclusivityMode: strPtr("per_unit")},
		"no mode":        {ResourceID: 1, TotalCapacity: 1},
		"blank typology": {ResourceID: 1, TotalCapacity: 1, Typology: strPtr("  ")},
		"no resource id": {TotalCapacity: 1, ExclusivityMode: strPtr("per_unit")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, cache.invalidated)
}

func TestGetConfig(t *testing.T) {
	svc, store, _ := newService()
	store.AddResource(domain.Resource{ID: 3, Name: "Room", TotalCapacity: 8, ExclusivityMode: domain.ModeWholeResource})

	resp, err := svc.GetConfig(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 8, resp.TotalCapacity)
	assert.Equal(t, 1, resp.EffectiveCapacity)

	_, err = svc.GetConfig(context.Background(), 4)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	store.ReadErr = errors.New("timeout")
	_, err = svc.GetConfig(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInternal)
}
