package create_reservation

import (
	"time"

	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// Request модель запроса на создание брони
// Два варианта адресации слота: напрямую через Date/StartTime, либо через
// ScheduleSlotID (дата и время берутся из слота расписания)
type Request struct {
	CustomerEmail string           // Email клиента (ключ для последующих мутаций)
	CustomerName  string           // Имя клиента
	Guests        int              // Количество гостей
	Service       string           // Услуга/категория (обед, ужин и т.д.)
	Notes         *string          // Дополнительные заметки (опционально)
	Date          time.Time        // Дата брони (для прямой адресации)
	StartTime     types.TimeString // Время брони (для прямой адресации)

	// ScheduleSlotID ссылка на слот расписания (альтернатива Date/StartTime)
	ScheduleSlotID *int64
}

// IsSlotReference возвращает true для варианта бронирования по слоту
func (r *Request) IsSlotReference() bool {
	return r.ScheduleSlotID != nil
}

// Response модель ответа с созданной бронью
type Response struct {
	ID               int64            // ID созданной брони (0 в provisional-режиме)
	ConfirmationCode string           // Код подтверждения (включается в письма)
	CustomerEmail    string           // Email клиента
	CustomerName     string           // Имя клиента
	Guests           int              // Количество гостей
	Service          string           // Услуга
	Notes            *string          // Заметки
	Date             time.Time        // Дата брони
	Time             types.TimeString // Время брони
	ScheduleSlotID   *int64           // Слот расписания, если бронь по слоту
	Booked           bool             // Флаг подтвержденной брони

	// Provisional бронь принята в degraded-режиме без гарантированной
	// записи в хранилище; требуется ручное подтверждение рестораном
	Provisional bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
