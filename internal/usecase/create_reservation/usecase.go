package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	reservationRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/schedule"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
)

// UseCase use case создания брони столика
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	notifier        Notifier
	pinger          StoragePinger
	txManager       TransactionManager
	probeTimeout    time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	pinger StoragePinger,
	txManager TransactionManager,
	probeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		notifier:        notifier,
		pinger:          pinger,
		txManager:       txManager,
		probeTimeout:    probeTimeout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Гонка "проверить-затем-вставить" закрыта дважды: проверка и вставка
// выполняются в сериализуемой транзакции, а частичный уникальный индекс
// на (date, time) делает конфликт записи авторитетным сигналом Conflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: email=%s, service=%s, date=%s, time=%s, slot_ref=%v",
		req.CustomerEmail, req.Service, req.Date.Format(domain.DateFormat), req.StartTime, req.IsSlotReference())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Health-проба хранилища с ограничением по времени
	// Если хранилище недоступно ещё до начала обработки, включается
	// документированный degraded-режим: provisional-бронь без записи
	if err := uc.probeStorage(ctx); err != nil {
		uc.logger.Error("CreateReservation: storage unhealthy, entering degraded mode: %v", err)
		return uc.executeDegraded(ctx, req)
	}

	confirmationCode := uuid.NewString()
	var result *domain.Reservation

	// 3. Проверка доступности и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		date := req.Date
		startTime := req.StartTime

		// 3.1. Разрешаем слот расписания, если бронь по ссылке
		if req.IsSlotReference() {
			slot, err := uc.scheduleRepo.GetByID(txCtx, *req.ScheduleSlotID)
			if err != nil {
				if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
					uc.logger.Warn("CreateReservation: schedule slot id=%d not found", *req.ScheduleSlotID)
					return ErrSlotNotFound
				}
				uc.logger.Error("CreateReservation: failed to get schedule slot id=%d: %v", *req.ScheduleSlotID, err)
				return fmt.Errorf("%w: failed to get schedule slot: %v", ErrInternal, err)
			}
			if slot.IsBooked {
				uc.logger.Warn("CreateReservation: schedule slot id=%d is already booked", slot.ID)
				return ErrSlotNotAvailable
			}
			date = slot.Date
			startTime = slot.TimeSlot
		}

		// 3.2. Проверка существующей активной брони на (date, time)
		exists, err := uc.reservationRepo.ExistsBookedAt(txCtx, date, startTime)
		if err != nil {
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateReservation: slot %s %s is already booked",
				date.Format(domain.DateFormat), startTime)
			return ErrSlotNotAvailable
		}

		// 3.3. Вставка брони
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ConfirmationCode: confirmationCode,
			CustomerEmail:    req.CustomerEmail,
			CustomerName:     req.CustomerName,
			Guests:           req.Guests,
			Service:          req.Service,
			Notes:            req.Notes,
			Date:             date,
			Time:             startTime,
			ScheduleSlotID:   req.ScheduleSlotID,
			Booked:           true,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateReservation: unique index rejected slot %s %s",
					date.Format(domain.DateFormat), startTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 3.4. Помечаем слот расписания занятым
		if req.IsSlotReference() {
			if err := uc.scheduleRepo.Claim(txCtx, *req.ScheduleSlotID); err != nil {
				if errors.Is(err, scheduleRepo.ErrSlotAlreadyBooked) {
					return ErrSlotNotAvailable
				}
				uc.logger.Error("CreateReservation: failed to claim schedule slot id=%d: %v", *req.ScheduleSlotID, err)
				return fmt.Errorf("%w: failed to claim schedule slot: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 4. Письмо-подтверждение best-effort: ошибка отправки не меняет
	// уже вычисленный успешный результат
	if err := uc.notifier.Send(ctx, mailer.NewConfirmationMessage(result)); err != nil {
		uc.logger.Error("CreateReservation: confirmation email failed for reservation id=%d: %v", result.ID, err)
	}

	return toResponse(result, false), nil
}

// executeDegraded принимает бронь без записи в хранилище
// Ответ явно помечен как provisional; письмо emergency-режима служит
// сигналом для ручного подтверждения рестораном
func (uc *UseCase) executeDegraded(ctx context.Context, req *Request) (*Response, error) {
	// Ссылку на слот без хранилища разрешить нельзя
	if req.IsSlotReference() {
		return nil, fmt.Errorf("%w: storage unavailable and slot reference cannot be resolved", ErrInternal)
	}

	now := uc.timeProvider.Now()
	res := &domain.Reservation{
		ConfirmationCode: uuid.NewString(),
		CustomerEmail:    req.CustomerEmail,
		CustomerName:     req.CustomerName,
		Guests:           req.Guests,
		Service:          req.Service,
		Notes:            req.Notes,
		Date:             req.Date,
		Time:             req.StartTime,
		Booked:           false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.notifier.Send(ctx, mailer.NewEmergencyMessage(res)); err != nil {
		uc.logger.Error("CreateReservation: emergency email failed for %s: %v", req.CustomerEmail, err)
	}

	uc.logger.Warn("CreateReservation: provisional reservation accepted for %s %s (code=%s)",
		res.Date.Format(domain.DateFormat), res.Time, res.ConfirmationCode)

	return toResponse(res, true), nil
}

// probeStorage проверяет доступность хранилища в пределах probeTimeout
func (uc *UseCase) probeStorage(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, uc.probeTimeout)
	defer cancel()
	return uc.pinger.PingContext(probeCtx)
}

func toResponse(res *domain.Reservation, provisional bool) *Response {
	return &Response{
		ID:               res.ID,
		ConfirmationCode: res.ConfirmationCode,
		CustomerEmail:    res.CustomerEmail,
		CustomerName:     res.CustomerName,
		Guests:           res.Guests,
		Service:          res.Service,
		Notes:            res.Notes,
		Date:             res.Date,
		Time:             res.Time,
		ScheduleSlotID:   res.ScheduleSlotID,
		Booked:           res.Booked,
		Provisional:      provisional,
		CreatedAt:        res.CreatedAt,
		UpdatedAt:        res.UpdatedAt,
	}
}
