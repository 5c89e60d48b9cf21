package delete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lamesa/LaMesa-ReservationService/internal/api/handlers"
	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations"
)

const (
	msgMissingIDOrEmail = "Falta el ID o el email del cliente"
	msgInvalidID        = "ID de reserva inválido"
	msgNotFound         = "Reserva no encontrada o email incorrecto"
	msgDeleted          = "Reserva eliminada exitosamente"
)

// DeleteAppointmentResponse конверт успешного ответа
type DeleteAppointmentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/appointments?id=&customer_email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	email := r.URL.Query().Get("customer_email")
	if rawID == "" || email == "" {
		h.logger.Warn("DELETE /appointments - Missing id or customer_email")
		handlers.RespondBadRequest(w, msgMissingIDOrEmail)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments - Invalid id: %s", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id, email); err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotFoundOrUnauthorized):
			h.logger.Warn("DELETE /appointments - Not found or unauthorized: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /appointments - Failed to delete reservation id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments - Reservation deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, DeleteAppointmentResponse{
		Success: true,
		Message: msgDeleted,
	})
}
