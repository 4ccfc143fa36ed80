package domain

import "github.com/shopspring/decimal"

// Параметры генерации слотов и каталога тарифов
const (
	SlotStepMinutes         = 30
	MaxActiveTiers          = 5
	FreeCallDurationMinutes = 0 // длительность бесплатной консультации по умолчанию
	MinTierDurationMinutes  = 0
	MaxTierDurationMinutes  = 480 // 8 hours
	MaxAvailableDatesRange  = 62  // дней в одном запросе календаря
)

// StandardDurations длительности, которые не считаются пользовательскими
var StandardDurations = []int{15, 30, 45, 60, 90, 120}

// Ставки платформы по умолчанию
var (
	DefaultCommissionRate = decimal.RequireFromString("0.10")
	DefaultTaxRate        = decimal.RequireFromString("0.21")
)

// CurrencyPrecision количество знаков после запятой при отображении сумм
const CurrencyPrecision = 2

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsStandardDuration возвращает true для стандартных длительностей
func IsStandardDuration(minutes int) bool {
	for _, d := range StandardDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
