package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetHostBookingsRequest запрос на получение бронирований хоста
type GetHostBookingsRequest struct {
	UserID          int64      `json:"userId"`
	HostID          int64      `json:"hostId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetHostBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		HostID:          r.HostID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ChargeResponse расчёт стоимости, округлённый до точности валюты
type ChargeResponse struct {
	BasePrice  decimal.Decimal `json:"basePrice"`
	AddOnTotal decimal.Decimal `json:"addOnTotal"`
	Total      decimal.Decimal `json:"total"`
	Commission decimal.Decimal `json:"commission"`
	Tax        decimal.Decimal `json:"tax"`
	HostPayout decimal.Decimal `json:"hostPayout"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Reference       string         `json:"reference"`
	HostID          int64          `json:"hostId"`
	ClientID        int64          `json:"clientId"`
	SessionDate     string         `json:"sessionDate"` // "2025-10-15"
	StartTime       string         `json:"startTime"`   // "10:00"
	DurationMinutes int            `json:"durationMinutes"`
	AddOns          []string       `json:"addOns"`
	Charge          ChargeResponse `json:"charge"`
	PaymentID       string         `json:"paymentId"`
	Status          string         `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainCharge конвертирует расчёт стоимости, округляя значения
func FromDomainCharge(c domain.ChargeBreakdown) ChargeResponse {
	r := c.Rounded()
	return ChargeResponse{
		BasePrice:  r.BasePrice,
		AddOnTotal: r.AddOnTotal,
		Total:      r.Total,
		Commission: r.Commission,
		Tax:        r.Tax,
		HostPayout: r.HostPayout,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	addOns := make([]string, 0, len(b.AddOns))
	for _, a := range b.AddOns {
		addOns = append(addOns, string(a))
	}

	return &BookingResponse{
		Reference:       b.Reference,
		HostID:          b.HostID,
		ClientID:        b.ClientID,
		SessionDate:     b.SessionDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		AddOns:          addOns,
		Charge:          FromDomainCharge(b.Charge),
		PaymentID:       b.PaymentID,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
