package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Ошибка чтения хранилища намеренно фатальна для листинга: дата не
	// должна выглядеть полностью свободной из-за недоступной БД
	ErrInternal = errors.New("get_available_slots: internal error")
)
