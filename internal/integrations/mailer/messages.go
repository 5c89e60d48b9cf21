package mailer

import (
	"fmt"
	"strings"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
)

// NewConfirmationMessage письмо об успешном создании брони
func NewConfirmationMessage(res *domain.Reservation) *Message {
	return &Message{
		To:      res.CustomerEmail,
		Subject: "Confirmación de Reserva - Restaurante",
		Text: fmt.Sprintf(
			"Estimado/a %s,\n\nSu reserva ha sido confirmada exitosamente.\n\n%s\n¡Esperamos su visita!",
			res.CustomerName, detailsText(res)),
		HTML: fmt.Sprintf(
			"<h2>¡Reserva Confirmada!</h2><p>Estimado/a %s,</p><p>Su reserva ha sido confirmada exitosamente.</p><p><strong>Detalles de su reserva:</strong></p>%s<p>¡Esperamos su visita!</p>",
			res.CustomerName, detailsHTML(res)),
		Kind: KindConfirmation,
	}
}

// NewUpdatedMessage письмо об изменении брони
func NewUpdatedMessage(res *domain.Reservation) *Message {
	return &Message{
		To:      res.CustomerEmail,
		Subject: "Reserva Actualizada - Restaurante",
		Text: fmt.Sprintf(
			"Estimado/a %s,\n\nSu reserva ha sido actualizada.\n\n%s\n¡Esperamos su visita!",
			res.CustomerName, detailsText(res)),
		HTML: fmt.Sprintf(
			"<h2>Reserva Actualizada</h2><p>Estimado/a %s,</p><p>Su reserva ha sido actualizada.</p><p><strong>Detalles de su reserva:</strong></p>%s<p>¡Esperamos su visita!</p>",
			res.CustomerName, detailsHTML(res)),
		Kind: KindUpdated,
	}
}

// NewCancelledMessage письмо об отмене брони
func NewCancelledMessage(res *domain.Reservation) *Message {
	return &Message{
		To:      res.CustomerEmail,
		Subject: "Reserva Cancelada - Restaurante",
		Text: fmt.Sprintf(
			"Estimado/a %s,\n\nSu reserva para el %s a las %s ha sido cancelada.\n\nEsperamos verle pronto.",
			res.CustomerName, res.Date.Format(domain.DateFormat), res.Time),
		HTML: fmt.Sprintf(
			"<h2>Reserva Cancelada</h2><p>Estimado/a %s,</p><p>Su reserva para el %s a las %s ha sido cancelada.</p><p>Esperamos verle pronto.</p>",
			res.CustomerName, res.Date.Format(domain.DateFormat), res.Time),
		Kind: KindCancelled,
	}
}

// NewEmergencyMessage письмо degraded-режима: бронь принята без
// подтвержденной записи в БД, требуется ручное подтверждение рестораном
func NewEmergencyMessage(res *domain.Reservation) *Message {
	return &Message{
		To:      res.CustomerEmail,
		Subject: "Reserva en Modo Emergencia - Restaurante",
		Text: fmt.Sprintf(
			"Estimado/a %s,\n\nSu reserva ha sido procesada en modo emergencia debido a problemas técnicos con nuestra base de datos.\n\n%s\nPor favor, contacte al restaurante para confirmar su reserva.\nDisculpe las molestias.",
			res.CustomerName, detailsText(res)),
		HTML: fmt.Sprintf(
			"<h2>Reserva en Modo Emergencia</h2><p>Estimado/a %s,</p><p>Su reserva ha sido procesada en modo emergencia debido a problemas técnicos con nuestra base de datos.</p><p><strong>Detalles de su reserva:</strong></p>%s<p>Por favor, contacte al restaurante para confirmar su reserva.</p><p>Disculpe las molestias.</p>",
			res.CustomerName, detailsHTML(res)),
		Kind: KindEmergency,
	}
}

func detailsText(res *domain.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fecha: %s\n", res.Date.Format(domain.DateFormat))
	fmt.Fprintf(&b, "Hora: %s\n", res.Time)
	fmt.Fprintf(&b, "Número de invitados: %d\n", res.Guests)
	fmt.Fprintf(&b, "Servicio: %s\n", res.Service)
	if res.Notes != nil && *res.Notes != "" {
		fmt.Fprintf(&b, "Notas: %s\n", *res.Notes)
	}
	fmt.Fprintf(&b, "Código de confirmación: %s\n", res.ConfirmationCode)
	return b.String()
}

func detailsHTML(res *domain.Reservation) string {
	var b strings.Builder
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Fecha: %s</li>", res.Date.Format(domain.DateFormat))
	fmt.Fprintf(&b, "<li>Hora: %s</li>", res.Time)
	fmt.Fprintf(&b, "<li>Número de invitados: %d</li>", res.Guests)
	fmt.Fprintf(&b, "<li>Servicio: %s</li>", res.Service)
	if res.Notes != nil && *res.Notes != "" {
		fmt.Fprintf(&b, "<li>Notas: %s</li>", *res.Notes)
	}
	fmt.Fprintf(&b, "<li>Código de confirmación: %s</li>", res.ConfirmationCode)
	b.WriteString("</ul>")
	return b.String()
}
