package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Reservation represents one occupant holding a resource on one calendar day
type Reservation struct {
	ID         int64
	ResourceID int64
	OccupantID int64
	Date       types.Date
	CreatedAt  time.Time
}

// ReservationFilter фильтр для выборки бронирований ресурса
type ReservationFilter struct {
	ResourceID int64      // Обязательный параметр
	From       types.Date // Начало периода включительно
	To         types.Date // Конец периода включительно
	OccupantID *int64     // Только бронирования занимающего (опционально)
}

// OccupantFilter фильтр для истории бронирований занимающего
type OccupantFilter struct {
	OccupantID int64       // Обязательный параметр
	After      *types.Date // Только даты строго позже (опционально), для предстоящих бронирований
}

// CountByDay groups reservations by date
func CountByDay(reservations []Reservation) map[types.Date]int {
	counts := make(map[types.Date]int, len(reservations))
	for _, r := range reservations {
		counts[r.Date]++
	}
	return counts
}

// HeldBy reports whether any of reservations belongs to occupantID
func HeldBy(reservations []Reservation, occupantID int64) bool {
	for _, r := range reservations {
		if r.OccupantID == occupantID {
			return true
		}
	}
	return false
}
