package submit_bookings

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	submitBookings "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/submit_bookings"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// SubmitBookingsRequest HTTP request model
type SubmitBookingsRequest struct {
	ResourceID int64    `json:"resourceId" validate:"required,gt=0"`
	OccupantID *int64   `json:"occupantId,omitempty" validate:"omitempty,gt=0"` // по умолчанию - вызывающий пользователь
	Dates      []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

// ReservationResponse HTTP модель созданного бронирования
type ReservationResponse struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resourceId"`
	OccupantID int64  `json:"occupantId"`
	Date       string `json:"date"`
	CreatedAt  string `json:"createdAt"`
}

// SubmitBookingsResponse HTTP response model
type SubmitBookingsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// RejectionResponse тело ответа при отказе: причина и первая отказанная дата
type RejectionResponse struct {
	Error  string  `json:"error"`
	Reason string  `json:"reason"`
	Date   *string `json:"date,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingsRequest) ToUseCaseRequest(callerID int64) (*submitBookings.Request, error) {
	dates := make([]types.Date, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	occupantID := callerID
	if r.OccupantID != nil {
		occupantID = *r.OccupantID
	}

	return &submitBookings.Request{
		ResourceID: r.ResourceID,
		OccupantID: occupantID,
		Dates:      dates,
	}, nil
}

// FromUseCaseResponse конвертирует созданные бронирования в HTTP response
func FromUseCaseResponse(created []domain.Reservation) *SubmitBookingsResponse {
	reservations := make([]ReservationResponse, len(created))
	for i, r := range created {
		reservations[i] = ReservationResponse{
			ID:         r.ID,
			ResourceID: r.ResourceID,
			OccupantID: r.OccupantID,
			Date:       r.Date.String(),
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		}
	}

	return &SubmitBookingsResponse{Reservations: reservations}
}

// FromRejection конвертирует отказ в тело ответа
func FromRejection(rejection *domain.Rejection, message string) *RejectionResponse {
	resp := &RejectionResponse{
		Error:  message,
		Reason: string(rejection.Reason),
	}
	if rejection.Date != nil {
		date := rejection.Date.String()
		resp.Date = &date
	}
	return resp
}
