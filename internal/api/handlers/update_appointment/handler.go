package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lamesa/LaMesa-ReservationService/internal/api/handlers"
	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations"
	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"
)

const (
	msgMissingIDOrEmail   = "Falta el ID o el email del cliente"
	msgInvalidID          = "ID de reserva inválido"
	msgInvalidRequestBody = "Datos de actualización inválidos"
	msgNotFound           = "Reserva no encontrada o email incorrecto"
	msgSlotNotAvailable   = "Este horario ya está reservado. Por favor, seleccione otro horario."
	msgSlotNotFound       = "El horario seleccionado no existe"
)

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

// Handle PATCH /api/appointments?id=&customer_email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	email := r.URL.Query().Get("customer_email")
	if rawID == "" || email == "" {
		h.logger.Warn("PATCH /appointments - Missing id or customer_email")
		handlers.RespondBadRequest(w, msgMissingIDOrEmail)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments - Invalid id: %s", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, email, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments - Invalid input for id=%d: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, reservations.ErrNotFoundOrUnauthorized):
			h.logger.Warn("PATCH /appointments - Not found or unauthorized: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrSlotNotFound):
			h.logger.Warn("PATCH /appointments - Schedule slot not found for id=%d", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reservations.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments - Slot not available for id=%d", id)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /appointments - Failed to update reservation id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments - Reservation updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
