package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBookingService/internal/testutil/memdb"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *memdb.Store, []int64) {
	t.Helper()

	store := memdb.New()
	repo := store.ReservationsRepo()

	var ids []int64
	for _, r := range []domain.Reservation{
		{ResourceID: 1, OccupantID: 10, Date: types.MustParseDate("2025-03-10")},
		{ResourceID: 2, OccupantID: 10, Date: types.MustParseDate("2025-03-12")},
		{ResourceID: 1, OccupantID: 20, Date: types.MustParseDate("2025-03-11")},
	} {
		created, err := repo.Create(context.Background(), &r)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	svc := NewService(repo, time.UTC, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)})
	return svc, store, ids
}

func TestGetByID(t *testing.T) {
	svc, _, ids := newService(t)

	resp, err := svc.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ResourceID)
	assert.Equal(t, int64(10), resp.OccupantID)
	assert.Equal(t, "2025-03-10", resp.Date)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByOccupant(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 10})
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, "2025-03-12", resp.Reservations[0].Date)
	assert.Equal(t, "2025-03-10", resp.Reservations[1].Date)

	empty, err := svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 30})
	require.NoError(t, err)
	assert.NotNil(t, empty.Reservations)
	assert.Empty(t, empty.Reservations)
}

func TestListByOccupant_UpcomingOnly(t *testing.T) {
	svc, _, _ := newService(t)

	// "сегодня" 2025-03-10: бронь на сегодня уже не предстоящая
	resp, err := svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 10, UpcomingOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "2025-03-12", resp.Reservations[0].Date)

	// в зоне UTC+14 уже 2025-03-11
	kiritimati := time.FixedZone("UTC+14", 14*60*60)
	svc = NewService(svc.reservationRepo, kiritimati, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)})
	resp, err = svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 20, UpcomingOnly: true})
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)
}

func TestListByOccupant_InvalidInput(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByOccupant(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByOccupant_RepositoryError(t *testing.T) {
	svc, store, _ := newService(t)
	store.ReadErr = errors.New("connection reset")

	_, err := svc.ListByOccupant(context.Background(), &models.ListByOccupantRequest{OccupantID: 10})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel(t *testing.T) {
	svc, store, ids := newService(t)

	require.NoError(t, svc.Cancel(context.Background(), ids[0]))
	assert.Len(t, store.Reservations(), 2)

	assert.ErrorIs(t, svc.Cancel(context.Background(), ids[0]), ErrReservationNotFound)
	assert.ErrorIs(t, svc.Cancel(context.Background(), -1), ErrInvalidInput)
}
