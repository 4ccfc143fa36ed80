package domain

import (
	"time"

	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// BookingStatus represents the status of a finalized booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking оплаченное бронирование сессии, сохраняется после успешной оплаты
type Booking struct {
	ID              int64
	Reference       string // публичный идентификатор, передаётся в платёжный провайдер
	HostID          int64
	ClientID        int64
	SessionDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	AddOns          []AddOn

	Charge    ChargeBreakdown
	PaymentID string
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// Overlaps проверяет пересечение бронирования с интервалом [start, start+duration)
// Граничащие интервалы не пересекаются
func (b *Booking) Overlaps(start types.TimeString, durationMinutes int) bool {
	slotStart, err := start.Minutes()
	if err != nil {
		return false
	}
	bookingStart, err := b.StartTime.Minutes()
	if err != nil {
		return false
	}
	slotEnd := slotStart + durationMinutes
	bookingEnd := bookingStart + b.DurationMinutes
	return bookingStart < slotEnd && bookingEnd > slotStart
}

// BookingsFilter фильтр для получения бронирований хоста
type BookingsFilter struct {
	HostID          int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}

// InactiveStatuses статусы, которые не занимают слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
