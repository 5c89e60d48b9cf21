package models

import (
	"fmt"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// Request модели

// UpdateReservationRequest запрос на частичное обновление брони
// Нулевые поля не меняются; смена даты/времени/слота требует повторной
// проверки доступности на стороне сервиса
type UpdateReservationRequest struct {
	Service        *string `json:"service,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	ScheduleSlotID *int64  `json:"scheduleSlotId,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *UpdateReservationRequest) ToDomainPatch() (domain.ReservationPatch, error) {
	patch := domain.ReservationPatch{
		Service:        r.Service,
		Notes:          r.Notes,
		ScheduleSlotID: r.ScheduleSlotID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return patch, fmt.Errorf("invalid date: %w", err)
		}
		patch.Date = &date
	}

	if r.Time != nil {
		ts, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return patch, fmt.Errorf("invalid time: %w", err)
		}
		patch.Time = &ts
	}

	return patch, nil
}

// Response модели

// ReservationResponse представление брони в ответах API
type ReservationResponse struct {
	ID               int64   `json:"id"`
	ConfirmationCode string  `json:"confirmationCode"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerName     string  `json:"customer_name"`
	Guests           int     `json:"guests"`
	Service          string  `json:"service"`
	Notes            *string `json:"notes,omitempty"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	ScheduleSlotID   *int64  `json:"scheduleSlotId,omitempty"`
	Booked           bool    `json:"booked"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:               res.ID,
		ConfirmationCode: res.ConfirmationCode,
		CustomerEmail:    res.CustomerEmail,
		CustomerName:     res.CustomerName,
		Guests:           res.Guests,
		Service:          res.Service,
		Notes:            res.Notes,
		Date:             res.Date.Format(domain.DateFormat),
		Time:             res.Time.String(),
		ScheduleSlotID:   res.ScheduleSlotID,
		Booked:           res.Booked,
		CreatedAt:        res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{Reservations: out}
}
