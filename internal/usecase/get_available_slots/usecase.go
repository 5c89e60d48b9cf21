package get_available_slots

import (
	"context"
	"fmt"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
)

// UseCase use case получения доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	policy          *domain.SchedulePolicy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, policy *domain.SchedulePolicy, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Занятые времена на дату
	// Ошибка чтения не превращается в пустой список занятых: листинг
	// падает целиком, чтобы не показать занятый слот свободным
	booked, err := uc.reservationRepo.GetBookedTimes(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	// 3. Каноничный список минус занятые
	free := subtractBooked(generateTimeSlots(uc.policy), booked)

	day := dayLabel(req.Date)
	slots := make([]domain.AvailableSlot, 0, len(free))
	for _, t := range free {
		slots = append(slots, domain.AvailableSlot{
			ID:       t.String(),
			Date:     req.Date,
			Day:      day,
			TimeSlot: t,
			Booked:   false,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for %s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: slots}, nil
}
