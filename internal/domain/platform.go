package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformSettings настройки платформы: флаги функций, ставки и цены услуг
type PlatformSettings struct {
	AllowFreeCalls     bool
	AllowScreenSharing bool
	AllowTranslation   bool
	AllowRecording     bool
	AllowTranscription bool

	CommissionRate decimal.Decimal
	TaxRate        decimal.Decimal

	AddOnPrices AddOnPriceTable

	UpdatedAt time.Time
}

// DefaultPlatformSettings настройки, если ни БД, ни конфиг их не задают
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		CommissionRate: DefaultCommissionRate,
		TaxRate:        DefaultTaxRate,
	}
}

// AddOnAllowed возвращает true, если услуга разрешена на платформе
func (s *PlatformSettings) AddOnAllowed(a AddOn) bool {
	switch a {
	case AddOnScreenSharing:
		return s.AllowScreenSharing
	case AddOnTranslation:
		return s.AllowTranslation
	case AddOnRecording:
		return s.AllowRecording
	case AddOnTranscription:
		return s.AllowTranscription
	default:
		return false
	}
}

// HasCommission возвращает true, если платформа берёт комиссию
func (s *PlatformSettings) HasCommission() bool {
	return s.CommissionRate.IsPositive()
}
