package domain

import "github.com/shopspring/decimal"

// ChargeBreakdown расчёт стоимости бронирования
// Значения не округляются внутри расчёта, округление только при отображении (Rounded)
type ChargeBreakdown struct {
	BasePrice  decimal.Decimal
	AddOnTotal decimal.Decimal
	Total      decimal.Decimal
	Commission decimal.Decimal
	Tax        decimal.Decimal
	HostPayout decimal.Decimal
}

// Rounded возвращает копию, округлённую до точности валюты
// Выплата хосту выводится из округлённых значений, чтобы commission + tax + hostPayout = total
func (c ChargeBreakdown) Rounded() ChargeBreakdown {
	total := c.Total.Round(CurrencyPrecision)
	commission := c.Commission.Round(CurrencyPrecision)
	tax := c.Tax.Round(CurrencyPrecision)

	return ChargeBreakdown{
		BasePrice:  c.BasePrice.Round(CurrencyPrecision),
		AddOnTotal: c.AddOnTotal.Round(CurrencyPrecision),
		Total:      total,
		Commission: commission,
		Tax:        tax,
		HostPayout: total.Sub(commission).Sub(tax),
	}
}

// IsFree возвращает true, если к оплате ничего нет
func (c ChargeBreakdown) IsFree() bool {
	return c.Total.IsZero()
}
