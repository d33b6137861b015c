package check_date_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/testutil/memdb"
	checkDateAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_date_availability"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	store := memdb.New()
	store.AddResource(domain.Resource{ID: 1, TotalCapacity: 3, ExclusivityMode: domain.ModePerUnit})
	_, err := store.ReservationsRepo().Create(context.Background(), &domain.Reservation{
		ResourceID: 1, OccupantID: 5, Date: types.MustParseDate("2025-03-10"),
	})
	require.NoError(t, err)

	uc := checkDateAvailability.NewUseCase(store.Resources(), store.ReservationsRepo(), time.UTC, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/availability/{date}", NewHandler(uc, nopLogger{}).Handle).
		Methods(http.MethodGet)

	tests := []struct {
		name   string
		url    string
		status int
		body   string
	}{
		{"partially taken", "/api/v1/resources/1/availability/2025-03-10", http.StatusOK,
			`{"date":"2025-03-10","available":true,"remainingCapacity":2}`},
		{"today", "/api/v1/resources/1/availability/2025-03-05", http.StatusOK,
			`{"date":"2025-03-05","available":false,"remainingCapacity":0}`},
		{"missing resource", "/api/v1/resources/2/availability/2025-03-10", http.StatusOK,
			`{"date":"2025-03-10","available":false,"remainingCapacity":0}`},
		{"bad date", "/api/v1/resources/1/availability/2025-02-30", http.StatusBadRequest, ""},
		{"bad resource id", "/api/v1/resources/0/availability/2025-03-10", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}
