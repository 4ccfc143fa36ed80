package charges

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// ComputeAddOnTotal суммирует цены выбранных услуг по таблице платформы
// Допустимость выбора не проверяется: набор ограничивает workflow
func ComputeAddOnTotal(selected domain.AddOnSet, table domain.AddOnPriceTable) decimal.Decimal {
	total := decimal.Zero
	for _, a := range selected.List() {
		total = total.Add(table.Price(a))
	}
	return total
}
