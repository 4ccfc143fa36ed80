package platform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var one = decimal.NewFromInt(1)

// validateSettings проверяет ставки и цены услуг
func validateSettings(s *domain.PlatformSettings) error {
	if err := validateRate("commissionRate", s.CommissionRate); err != nil {
		return err
	}
	if err := validateRate("taxRate", s.TaxRate); err != nil {
		return err
	}

	for _, a := range domain.AllAddOns {
		if s.AddOnPrices.Price(a).IsNegative() {
			return fmt.Errorf("%w: price of %s must not be negative", ErrInvalidInput, a)
		}
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidInput, name)
	}
	return nil
}
