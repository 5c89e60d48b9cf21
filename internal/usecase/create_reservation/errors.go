package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrSlotNotFound возвращается, когда указанный слот расписания не найден
	ErrSlotNotFound = errors.New("create_reservation: schedule slot not found")

	// ErrSlotNotAvailable возвращается, когда слот (date, time) уже занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
