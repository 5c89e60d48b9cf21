package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	reservationRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/schedule"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронями столиков
type Service struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// List получает список броней, опционально отфильтрованный по дате
func (s *Service) List(ctx context.Context, date *time.Time) (*models.ReservationListResponse, error) {
	if date != nil {
		s.logger.Info("List: fetching reservations for date=%s", date.Format(domain.DateFormat))
	} else {
		s.logger.Info("List: fetching all reservations")
	}

	list, err := s.reservationRepo.List(ctx, date)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// Update частично обновляет бронь
// Авторизация - пара (id, email) должна совпадать с владельцем брони;
// несуществующая бронь и чужая бронь дают один и тот же отказ
// Перенос на другую дату/время/слот проходит повторную проверку
// доступности в той же сериализуемой транзакции
func (s *Service) Update(ctx context.Context, id int64, email string, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%d for email=%s", id, email)

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("Update: invalid patch for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch for reservation id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var updated *domain.Reservation

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.authorize(txCtx, id, email)
		if err != nil {
			return err
		}

		if patch.ChangesSlot() {
			if err := s.rebook(txCtx, current, &patch); err != nil {
				return err
			}
		}

		result, err := s.reservationRepo.Update(txCtx, id, patch)
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrNotFoundOrUnauthorized
			case errors.Is(err, reservationRepo.ErrDuplicateSlot):
				s.logger.Warn("Update: unique index rejected move of reservation id=%d", id)
				return ErrSlotNotAvailable
			default:
				s.logger.Error("Update: repository error for reservation id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
		}

		updated = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated reservation id=%d", id)

	// Письмо об изменении best-effort: бронь уже обновлена
	if err := s.notifier.Send(ctx, mailer.NewUpdatedMessage(updated)); err != nil {
		s.logger.Error("Update: notification email failed for reservation id=%d: %v", id, err)
	}

	return models.FromDomainReservation(updated), nil
}

// Delete отменяет бронь и освобождает связанный слот расписания
func (s *Service) Delete(ctx context.Context, id int64, email string) error {
	s.logger.Info("Delete: deleting reservation id=%d for email=%s", id, email)

	var deleted *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.authorize(txCtx, id, email)
		if err != nil {
			return err
		}

		// Освобождаем слот расписания до удаления записи
		if current.IsLinkedToSlot() {
			if err := s.scheduleRepo.SetBooked(txCtx, *current.ScheduleSlotID, false); err != nil {
				if !errors.Is(err, scheduleRepo.ErrSlotNotFound) {
					s.logger.Error("Delete: failed to release slot id=%d: %v", *current.ScheduleSlotID, err)
					return fmt.Errorf("%w: Delete - failed to release slot: %v", ErrInternal, err)
				}
				s.logger.Warn("Delete: linked slot id=%d no longer exists", *current.ScheduleSlotID)
			}
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrNotFoundOrUnauthorized
			}
			s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		deleted = current
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)

	if err := s.notifier.Send(ctx, mailer.NewCancelledMessage(deleted)); err != nil {
		s.logger.Error("Delete: cancellation email failed for reservation id=%d: %v", id, err)
	}

	return nil
}

// Вспомогательные методы

// authorize находит бронь по паре (id, email)
// Не найдена и не совпал email - один и тот же результат
func (s *Service) authorize(ctx context.Context, id int64, email string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByIDAndEmail(ctx, id, email)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("authorize: reservation id=%d not found for email=%s", id, email)
			return nil, ErrNotFoundOrUnauthorized
		}
		s.logger.Error("authorize: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: authorize - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// rebook переносит бронь на другой слот: разрешает целевые дату/время,
// проверяет доступность, освобождает старый слот и занимает новый
func (s *Service) rebook(ctx context.Context, current *domain.Reservation, patch *domain.ReservationPatch) error {
	targetDate := current.Date
	targetTime := current.Time

	// Ссылка на слот расписания переопределяет дату и время из патча
	if patch.ScheduleSlotID != nil {
		slot, err := s.scheduleRepo.GetByID(ctx, *patch.ScheduleSlotID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
				s.logger.Warn("rebook: schedule slot id=%d not found", *patch.ScheduleSlotID)
				return ErrSlotNotFound
			}
			s.logger.Error("rebook: failed to get schedule slot id=%d: %v", *patch.ScheduleSlotID, err)
			return fmt.Errorf("%w: rebook - failed to get schedule slot: %v", ErrInternal, err)
		}
		if slot.IsBooked {
			s.logger.Warn("rebook: schedule slot id=%d is already booked", slot.ID)
			return ErrSlotNotAvailable
		}
		targetDate = slot.Date
		targetTime = slot.TimeSlot
		patch.Date = &slot.Date
		patch.Time = &slot.TimeSlot
	} else {
		if patch.Date != nil {
			targetDate = *patch.Date
		}
		if patch.Time != nil {
			targetTime = *patch.Time
		}
	}

	// Перенос на свой же слот проверку не проходит - он занят самой бронью
	if !current.OccupiesSameSlot(targetDate, targetTime) {
		exists, err := s.reservationRepo.ExistsBookedAt(ctx, targetDate, targetTime)
		if err != nil {
			s.logger.Error("rebook: availability check failed: %v", err)
			return fmt.Errorf("%w: rebook - availability check failed: %v", ErrInternal, err)
		}
		if exists {
			s.logger.Warn("rebook: slot %s %s is already booked",
				targetDate.Format(domain.DateFormat), targetTime)
			return ErrSlotNotAvailable
		}
	}

	// Освобождаем старый слот, если бронь была привязана к расписанию
	if current.IsLinkedToSlot() && (patch.ScheduleSlotID == nil || *patch.ScheduleSlotID != *current.ScheduleSlotID) {
		if err := s.scheduleRepo.SetBooked(ctx, *current.ScheduleSlotID, false); err != nil {
			if !errors.Is(err, scheduleRepo.ErrSlotNotFound) {
				s.logger.Error("rebook: failed to release slot id=%d: %v", *current.ScheduleSlotID, err)
				return fmt.Errorf("%w: rebook - failed to release slot: %v", ErrInternal, err)
			}
		}
	}

	// Занимаем новый слот атомарно
	if patch.ScheduleSlotID != nil && (current.ScheduleSlotID == nil || *patch.ScheduleSlotID != *current.ScheduleSlotID) {
		if err := s.scheduleRepo.Claim(ctx, *patch.ScheduleSlotID); err != nil {
			switch {
			case errors.Is(err, scheduleRepo.ErrSlotAlreadyBooked):
				return ErrSlotNotAvailable
			case errors.Is(err, scheduleRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			default:
				s.logger.Error("rebook: failed to claim slot id=%d: %v", *patch.ScheduleSlotID, err)
				return fmt.Errorf("%w: rebook - failed to claim slot: %v", ErrInternal, err)
			}
		}
	}

	return nil
}
