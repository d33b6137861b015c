package check_date_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/testutil/memdb"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-03-05 10:00 UTC
var now = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

func newUseCase(store *memdb.Store) *UseCase {
	uc := NewUseCase(store.Resources(), store.ReservationsRepo(), time.UTC, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func seed(t *testing.T, store *memdb.Store, resourceID int64, date string, occupants ...int64) {
	t.Helper()
	for _, occupant := range occupants {
		_, err := store.ReservationsRepo().Create(context.Background(), &domain.Reservation{
			ResourceID: resourceID,
			OccupantID: occupant,
			Date:       types.MustParseDate(date),
		})
		require.NoError(t, err)
	}
}

func TestExecute(t *testing.T) {
	store := memdb.New()
	store.AddResource(domain.Resource{ID: 1, TotalCapacity: 3, ExclusivityMode: domain.ModePerUnit})
	store.AddResource(domain.Resource{ID: 2, TotalCapacity: 10, ExclusivityMode: domain.ModeWholeResource})
	seed(t, store, 1, "2025-03-10", 100, 101)
	seed(t, store, 1, "2025-03-11", 100, 101, 102)
	seed(t, store, 2, "2025-03-10", 100)

	uc := newUseCase(store)

	tests := []struct {
		name       string
		resourceID int64
		date       string
		want       Response
	}{
		{"today is unavailable", 1, "2025-03-05", Response{false, 0}},
		{"yesterday is unavailable", 1, "2025-03-04", Response{false, 0}},
		{"tomorrow without reservations", 1, "2025-03-06", Response{true, 3}},
		{"per unit partially taken", 1, "2025-03-10", Response{true, 1}},
		{"per unit full", 1, "2025-03-11", Response{false, 0}},
		{"whole resource free", 2, "2025-03-06", Response{true, 1}},
		{"whole resource taken", 2, "2025-03-10", Response{false, 0}},
		{"missing resource", 999, "2025-03-06", Response{false, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{
				ResourceID: tt.resourceID,
				Date:       types.MustParseDate(tt.date),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *resp)
		})
	}
}

func TestExecute_TodayInConfiguredTimezone(t *testing.T) {
	store := memdb.New()
	store.AddResource(domain.Resource{ID: 1, TotalCapacity: 1, ExclusivityMode: domain.ModePerUnit})

	// 2025-03-05 22:00 UTC это уже 2025-03-06 в Москве
	loc := time.FixedZone("MSK", 3*60*60)
	uc := NewUseCase(store.Resources(), store.ReservationsRepo(), loc, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2025, time.March, 5, 22, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: types.MustParseDate("2025-03-06")})
	require.NoError(t, err)
	assert.False(t, resp.Available)

	resp, err = uc.Execute(context.Background(), &Request{ResourceID: 1, Date: types.MustParseDate("2025-03-07")})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(memdb.New())

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 0, Date: types.MustParseDate("2025-03-06")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageFailure(t *testing.T) {
	store := memdb.New()
	store.AddResource(domain.Resource{ID: 1, TotalCapacity: 1, ExclusivityMode: domain.ModePerUnit})
	store.ReadErr = errors.New("connection reset")

	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 1, Date: types.MustParseDate("2025-03-06")})
	assert.ErrorIs(t, err, ErrTransientFailure)
}
