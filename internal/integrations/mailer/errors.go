package mailer

import "errors"

var (
	// ErrNotConfigured возвращается, когда SMTP учетные данные не заданы
	// Отправка писем best-effort: вызывающий код логирует и продолжает
	ErrNotConfigured = errors.New("mailer: email service is not properly configured")

	// ErrSendFailed возвращается при ошибке отправки через SMTP relay
	ErrSendFailed = errors.New("mailer: failed to send email")
)
