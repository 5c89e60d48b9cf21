package create_reservation

import (
	"fmt"
	"strings"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Проверки намеренно лёгкие: диапазоны вместимости по услугам бэкенд
// не проверяет (это осознанный пробел продукта, а не упущение)
func validateRequest(req *Request) error {
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Service) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if len(req.Service) > domain.MaxServiceLength {
		return fmt.Errorf("%w: service is too long", ErrInvalidInput)
	}

	if req.Guests < 0 || req.Guests > domain.MaxGuests {
		return fmt.Errorf("%w: guests must be between 0 and %d", ErrInvalidInput, domain.MaxGuests)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	// Слот должен быть адресуем: либо ссылка на слот расписания,
	// либо полная пара дата+время
	if req.IsSlotReference() {
		if *req.ScheduleSlotID <= 0 {
			return fmt.Errorf("%w: scheduleSlotId must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	return nil
}
