package notifier

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// EventBookingConfirmed тип уведомления об оплаченном бронировании
const EventBookingConfirmed = "booking_confirmed"

// Notification уведомление хосту и клиенту
type Notification struct {
	Event           string          `json:"event"`
	Reference       string          `json:"reference"`
	HostID          int64           `json:"host_id"`
	ClientID        int64           `json:"client_id"`
	SessionDate     string          `json:"session_date"`
	StartTime       string          `json:"start_time"`
	DurationMinutes int             `json:"duration_minutes"`
	AddOns          []string        `json:"add_ons"`
	Total           decimal.Decimal `json:"total"`
	HostPayout      decimal.Decimal `json:"host_payout"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FromBooking строит уведомление о подтверждённом бронировании
func FromBooking(b domain.Booking) Notification {
	addOns := make([]string, 0, len(b.AddOns))
	for _, a := range b.AddOns {
		addOns = append(addOns, string(a))
	}
	charge := b.Charge.Rounded()
	return Notification{
		Event:           EventBookingConfirmed,
		Reference:       b.Reference,
		HostID:          b.HostID,
		ClientID:        b.ClientID,
		SessionDate:     b.SessionDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		AddOns:          addOns,
		Total:           charge.Total,
		HostPayout:      charge.HostPayout,
	}
}
