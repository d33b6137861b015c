package models

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// ListByOccupantRequest запрос истории бронирований занимающего
type ListByOccupantRequest struct {
	OccupantID   int64
	UpcomingOnly bool // только даты после сегодняшней
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resourceId"`
	OccupantID int64     `json:"occupantId"`
	Date       string    `json:"date"` // "2025-10-15"
	CreatedAt  time.Time `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		OccupantID: r.OccupantID,
		Date:       r.Date.String(),
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for i := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&reservations[i]))
	}

	return resp
}
