package mailer

// Message транзакционное письмо для внешнего SMTP relay
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string

	// Kind вид уведомления (confirmation/updated/cancelled/emergency),
	// используется только для логов и метрик
	Kind string
}

// Виды уведомлений
const (
	KindConfirmation = "confirmation"
	KindUpdated      = "updated"
	KindCancelled    = "cancelled"
	KindEmergency    = "emergency"
)
