package submit_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	submitBookings "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/submit_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректный запрос на бронирование"
	msgUnauthorized       = "требуется заголовок X-User-ID"
	msgResourceNotFound   = "ресурс не найден"
	msgDateUnavailable    = "дата недоступна для бронирования"
	msgAlreadyBooked      = "на эту дату уже есть бронирование"
)

type Handler struct {
	useCase SubmitBookingsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SubmitBookingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /reservations - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(callerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, submitBookings.ErrInvalidInput) {
			h.logger.Warn("POST /reservations - Invalid input: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}

		h.logger.Error("POST /reservations - Failed to submit bookings: request_id=%s, resource_id=%d, occupant_id=%d, error=%v",
			middleware.GetRequestID(r.Context()), useCaseReq.ResourceID, useCaseReq.OccupantID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Rejection != nil {
		switch result.Rejection.Reason {
		case domain.ReasonResourceNotFound:
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondJSON(w, http.StatusNotFound, FromRejection(result.Rejection, msgResourceNotFound))

		case domain.ReasonAlreadyBooked:
			h.logger.Warn("POST /reservations - Already booked: resource_id=%d, occupant_id=%d, %s",
				useCaseReq.ResourceID, useCaseReq.OccupantID, result.Rejection)
			handlers.RespondJSON(w, http.StatusBadRequest, FromRejection(result.Rejection, msgAlreadyBooked))

		default:
			h.logger.Warn("POST /reservations - Date unavailable: resource_id=%d, occupant_id=%d, %s",
				useCaseReq.ResourceID, useCaseReq.OccupantID, result.Rejection)
			handlers.RespondJSON(w, http.StatusBadRequest, FromRejection(result.Rejection, msgDateUnavailable))
		}
		return
	}

	h.logger.Info("POST /reservations - Reservations created: resource_id=%d, occupant_id=%d, count=%d",
		useCaseReq.ResourceID, useCaseReq.OccupantID, len(result.Created))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result.Created))
}
