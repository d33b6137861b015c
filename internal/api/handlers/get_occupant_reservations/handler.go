package get_occupant_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

const (
	msgInvalidOccupantID = "некорректный ID занимающего"
	msgInvalidUpcoming   = "параметр upcoming должен быть true или false"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/occupants/{occupantId}/reservations[?upcoming=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	occupantID, err := strconv.ParseInt(mux.Vars(r)["occupantId"], 10, 64)
	if err != nil || occupantID <= 0 {
		h.logger.Warn("GET /occupants/{id}/reservations - Invalid occupant ID: %q", mux.Vars(r)["occupantId"])
		handlers.RespondBadRequest(w, msgInvalidOccupantID)
		return
	}

	req := &models.ListByOccupantRequest{OccupantID: occupantID}
	if raw := r.URL.Query().Get("upcoming"); raw != "" {
		req.UpcomingOnly, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /occupants/{id}/reservations - Invalid upcoming flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidUpcoming)
			return
		}
	}

	result, err := h.service.ListByOccupant(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /occupants/{id}/reservations - Failed to get reservations: occupant_id=%d, error=%v",
			occupantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /occupants/{id}/reservations - Reservations retrieved: occupant_id=%d, count=%d",
		occupantID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
