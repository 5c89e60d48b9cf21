package get_available_slots

import (
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Представление (Availability View) производное: каноничный список минус
// занятые времена, пересчитывается на каждый запрос и нигде не кешируется
type Response struct {
	Date  time.Time              // Дата, на которую запрашивались слоты
	Slots []domain.AvailableSlot // Список доступных слотов
}
