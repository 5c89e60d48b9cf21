package create_appointment

import (
	"errors"
	"net/http"

	"github.com/lamesa/LaMesa-ReservationService/internal/api/handlers"
	createReservation "github.com/lamesa/LaMesa-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "Datos de reserva inválidos"
	msgInvalidDateOrTime  = "Formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgSlotNotAvailable   = "Este horario ya está reservado. Por favor, seleccione otro horario."
	msgSlotNotFound       = "El horario seleccionado no existe"
	msgCreated            = "Reserva creada exitosamente"
	msgCreatedProvisional = "Reserva registrada en modo emergencia. El restaurante confirmará su reserva manualmente."
	msgInternalError      = "Error al procesar la reserva. Por favor, intente nuevamente."
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: email=%s, date=%s, time=%s",
				req.CustomerEmail, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Schedule slot not found: email=%s", req.CustomerEmail)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("POST /appointments - Failed to create reservation: email=%s, error=%v",
				req.CustomerEmail, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	message := msgCreated
	if result.Provisional {
		message = msgCreatedProvisional
	}

	h.logger.Info("POST /appointments - Reservation created: id=%d, email=%s, provisional=%v",
		result.ID, req.CustomerEmail, result.Provisional)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, message))
}
