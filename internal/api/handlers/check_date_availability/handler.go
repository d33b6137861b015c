package check_date_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	checkDateAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_date_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase CheckDateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckDateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability/{date}
// Несуществующий ресурс отвечает 200 с available=false: на нём ничего нельзя забронировать.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability/{date} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(resourceID, vars["date"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, checkDateAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /resources/{id}/availability/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}

		h.logger.Error("GET /resources/{id}/availability/{date} - Failed to check date: resource_id=%d, date=%s, error=%v",
			resourceID, useCaseReq.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{id}/availability/{date} - Date checked: resource_id=%d, date=%s, available=%t, remaining=%d",
		resourceID, useCaseReq.Date, result.Available, result.RemainingCapacity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq.Date, result))
}
