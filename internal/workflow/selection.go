package workflow

import (
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// Selection выбор клиента в рамках одного процесса бронирования
// Принадлежит ровно одному Workflow и не сохраняется до завершения оплаты
type Selection struct {
	Date   time.Time
	Time   types.TimeString
	Tier   *domain.PricingTier
	AddOns domain.AddOnSet
}

// HasDate возвращает true, если дата выбрана
func (s Selection) HasDate() bool {
	return !s.Date.IsZero()
}

// HasTime возвращает true, если время выбрано
func (s Selection) HasTime() bool {
	return !s.Time.IsZero()
}

// HasTier возвращает true, если тариф выбран
func (s Selection) HasTier() bool {
	return s.Tier != nil
}

// Clone возвращает независимую копию выбора
func (s *Selection) Clone() Selection {
	clone := Selection{
		Date:   s.Date,
		Time:   s.Time,
		AddOns: s.AddOns.Clone(),
	}
	if s.Tier != nil {
		tier := *s.Tier
		clone.Tier = &tier
	}
	return clone
}
