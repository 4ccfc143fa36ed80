package charges

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// Splitter делит сумму бронирования между платформой и хостом
//
//	commission = total * CommissionRate
//	tax        = commission * TaxRate (налог берётся с комиссии, не с суммы)
//	hostPayout = total - commission - tax
type Splitter struct {
	CommissionRate decimal.Decimal
	TaxRate        decimal.Decimal
}

// NewSplitter создает Splitter по ставкам из настроек платформы
func NewSplitter(settings domain.PlatformSettings) Splitter {
	return Splitter{
		CommissionRate: settings.CommissionRate,
		TaxRate:        settings.TaxRate,
	}
}

// DefaultSplitter Splitter со ставками по умолчанию (0.10 / 0.21)
func DefaultSplitter() Splitter {
	return Splitter{
		CommissionRate: domain.DefaultCommissionRate,
		TaxRate:        domain.DefaultTaxRate,
	}
}

// Split рассчитывает разбивку для базовой цены и суммы услуг
// Промежуточные значения не округляются
func (s Splitter) Split(basePrice, addOnTotal decimal.Decimal) domain.ChargeBreakdown {
	total := basePrice.Add(addOnTotal)
	commission := total.Mul(s.CommissionRate)
	tax := commission.Mul(s.TaxRate)

	return domain.ChargeBreakdown{
		BasePrice:  basePrice,
		AddOnTotal: addOnTotal,
		Total:      total,
		Commission: commission,
		Tax:        tax,
		HostPayout: total.Sub(commission).Sub(tax),
	}
}
