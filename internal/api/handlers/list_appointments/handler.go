package list_appointments

import (
	"net/http"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/api/handlers"
	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
)

const (
	msgInvalidDate   = "Formato de fecha inválido, se espera YYYY-MM-DD"
	msgFailedToFetch = "Error al obtener las reservas"
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

// Handle GET /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Фильтр по дате опционален: без него возвращаются все брони
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date filter: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	result, err := h.service.List(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to list reservations: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgFailedToFetch)
		return
	}

	h.logger.Info("GET /appointments - Returned %d reservations", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
