package get_schedules

import (
	"net/http"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/api/handlers"
	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	getAvailableSlots "github.com/lamesa/LaMesa-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgDateRequired   = "La fecha es requerida"
	msgInvalidDate    = "Formato de fecha inválido, se espera YYYY-MM-DD"
	msgFailedToVerify = "Error al verificar disponibilidad"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/schedules?date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.logger.Warn("GET /schedules - Missing date parameter")
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /schedules - Invalid date: %s", raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		// Любая ошибка чтения скрывает доступность целиком: показать
		// занятый слот свободным хуже, чем отдать 500
		h.logger.Error("GET /schedules - Failed to get available slots for %s: %v", raw, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgFailedToVerify)
		return
	}

	h.logger.Info("GET /schedules - Returned %d slots for %s", len(result.Slots), raw)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
