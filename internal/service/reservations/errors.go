package reservations

import "errors"

var (
	// ErrNotFoundOrUnauthorized возвращается, когда бронь не найдена либо
	// email не совпадает с email владельца. Случаи намеренно неразличимы,
	// чтобы не раскрывать существование чужих броней
	ErrNotFoundOrUnauthorized = errors.New("reservation not found or email mismatch")

	// ErrSlotNotAvailable возвращается, когда целевой слот уже занят
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSlotNotFound возвращается, когда слот расписания не найден
	ErrSlotNotFound = errors.New("schedule slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
