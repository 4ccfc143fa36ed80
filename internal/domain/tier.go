package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingTier тариф хоста: длительность сессии и её цена
// DurationMinutes - натуральный ключ, у хоста один тариф на длительность
type PricingTier struct {
	HostID          int64
	DurationMinutes int // 0 = бесплатная консультация
	Price           decimal.Decimal
	IsActive        bool
	IsCustom        bool

	IncludesScreenSharing bool
	IncludesTranslation   bool
	IncludesRecording     bool
	IncludesTranscription bool

	UpdatedAt time.Time
}

// Includes возвращает true, если хост предлагает услугу в этом тарифе
func (t *PricingTier) Includes(a AddOn) bool {
	switch a {
	case AddOnScreenSharing:
		return t.IncludesScreenSharing
	case AddOnTranslation:
		return t.IncludesTranslation
	case AddOnRecording:
		return t.IncludesRecording
	case AddOnTranscription:
		return t.IncludesTranscription
	default:
		return false
	}
}

// SetIncludes включает или выключает услугу в тарифе
func (t *PricingTier) SetIncludes(a AddOn, included bool) {
	switch a {
	case AddOnScreenSharing:
		t.IncludesScreenSharing = included
	case AddOnTranslation:
		t.IncludesTranslation = included
	case AddOnRecording:
		t.IncludesRecording = included
	case AddOnTranscription:
		t.IncludesTranscription = included
	}
}

// IncludedAddOns возвращает услуги, включенные в тариф
func (t *PricingTier) IncludedAddOns() AddOnSet {
	set := make(AddOnSet)
	for _, a := range AllAddOns {
		if t.Includes(a) {
			set[a] = true
		}
	}
	return set
}

// IsFree возвращает true для тарифа бесплатной консультации
func (t *PricingTier) IsFree(freeCallDuration int) bool {
	return t.DurationMinutes == freeCallDuration
}
