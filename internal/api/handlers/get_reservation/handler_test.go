package get_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBookingService/internal/testutil/memdb"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	store := memdb.New()
	created, err := store.ReservationsRepo().Create(context.Background(), &domain.Reservation{
		ResourceID: 2, OccupantID: 3, Date: types.MustParseDate("2025-06-01"),
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}",
		NewHandler(reservations.NewService(store.ReservationsRepo(), time.UTC, nopLogger{}), nopLogger{}).Handle).Methods(http.MethodGet)

	serve := func(url string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		return w
	}

	w := serve("/api/v1/reservations/" + strconv.FormatInt(created.ID, 10))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2025-06-01"`)
	assert.Contains(t, w.Body.String(), `"occupantId":3`)

	assert.Equal(t, http.StatusNotFound, serve("/api/v1/reservations/77").Code)
	assert.Equal(t, http.StatusBadRequest, serve("/api/v1/reservations/x").Code)
}
