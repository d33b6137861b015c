package submit_bookings

import (
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Request модель запроса на бронирование набора дат
type Request struct {
	ResourceID int64        // ID ресурса
	OccupantID int64        // ID занимающего
	Dates      []types.Date // Даты в порядке выбора, повторы схлопываются
}

// Response результат бронирования.
// Либо Created (все даты сохранены), либо Rejection с первой отказанной датой (не сохранено ничего).
type Response struct {
	Created   []domain.Reservation
	Rejection *domain.Rejection
}
