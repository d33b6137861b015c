package get_monthly_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	getMonthlyAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/get_monthly_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingPeriod     = "параметры year и month обязательны"
	msgInvalidPeriod     = "некорректный год или месяц"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	useCase GetMonthlyAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthlyAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability
// Query params: year (required), month (required, 1-12)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" || monthStr == "" {
		h.logger.Warn("GET /resources/{id}/availability - Missing year or month: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	useCaseReq, err := ToUseCaseRequest(resourceID, yearStr, monthStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getMonthlyAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /resources/{id}/availability - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}

		h.logger.Error("GET /resources/{id}/availability - Failed to compute availability: resource_id=%d, error=%v",
			resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Rejection != nil {
		h.logger.Warn("GET /resources/{id}/availability - Resource not found: resource_id=%d", resourceID)
		handlers.RespondNotFound(w, msgResourceNotFound)
		return
	}

	h.logger.Info("GET /resources/{id}/availability - Availability computed: resource_id=%d, period=%04d-%02d, dates_count=%d",
		resourceID, useCaseReq.Year, useCaseReq.Month, len(result.AvailableDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
