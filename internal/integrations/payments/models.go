package payments

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// CaptureRequest запрос на списание оплаты за бронирование
type CaptureRequest struct {
	Amount           decimal.Decimal
	BookingReference string
	IdempotencyKey   string
	AddOns           []domain.AddOn
	HostID           int64
	ClientID         int64
}

// CaptureResult результат успешного списания
type CaptureResult struct {
	PaymentID string
	Amount    decimal.Decimal
	Status    string
}

// StatusNotRequired платёж с нулевой суммой, провайдер не вызывался
const StatusNotRequired = "not_required"
