package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/lamesa/LaMesa-ReservationService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего SMTP relay
// Отправка писем никогда не фатальна для результата запроса: все ошибки
// возвращаются вызывающему коду, который их логирует и продолжает
type Client struct {
	dialer      *gomail.Dialer
	from        string
	metrics     *metrics.Metrics
	serviceName string
	log         Logger
}

// NewClient создает новый экземпляр SMTP клиента
// При пустых учетных данных клиент создается, но Send возвращает
// ErrNotConfigured; metrics может быть nil, если метрики выключены
func NewClient(host string, port int, user, password, from string, m *metrics.Metrics, serviceName string, log Logger) *Client {
	var dialer *gomail.Dialer
	if host != "" && user != "" && password != "" {
		dialer = gomail.NewDialer(host, port, user, password)
	}

	return &Client{
		dialer:      dialer,
		from:        from,
		metrics:     m,
		serviceName: serviceName,
		log:         log,
	}
}

// Send отправляет письмо через SMTP relay
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if c.dialer == nil {
		c.observe(msg.Kind, "skipped")
		return ErrNotConfigured
	}

	if err := ctx.Err(); err != nil {
		c.observe(msg.Kind, "error")
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, "Sistema de Reservas")
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("X-Mailer", "Restaurant Booking System")
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	c.log.Info("Mailer: sending %s email to %s", msg.Kind, msg.To)

	if err := c.dialer.DialAndSend(m); err != nil {
		c.observe(msg.Kind, "error")
		return fmt.Errorf("%w: kind=%s: %v", ErrSendFailed, msg.Kind, err)
	}

	c.observe(msg.Kind, "success")
	c.log.Info("Mailer: %s email sent to %s", msg.Kind, msg.To)
	return nil
}

func (c *Client) observe(kind, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.NotificationsTotal.WithLabelValues(c.serviceName, kind, status).Inc()
}
