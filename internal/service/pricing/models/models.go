package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// ActivateTierRequest запрос на активацию тарифа
// Nil-поля сохраняют текущие значения существующего тарифа
type ActivateTierRequest struct {
	DurationMinutes       int
	Price                 *decimal.Decimal
	IncludesScreenSharing *bool
	IncludesTranslation   *bool
	IncludesRecording     *bool
	IncludesTranscription *bool
	IsCustom              *bool
}

// HasFlags возвращает true, если запрос меняет хотя бы один флаг услуги
func (r *ActivateTierRequest) HasFlags() bool {
	return r.IncludesScreenSharing != nil || r.IncludesTranslation != nil ||
		r.IncludesRecording != nil || r.IncludesTranscription != nil
}

// TierResponse тариф в ответе API
type TierResponse struct {
	DurationMinutes       int             `json:"durationMinutes"`
	Price                 decimal.Decimal `json:"price"`
	IsActive              bool            `json:"isActive"`
	IsCustom              bool            `json:"isCustom"`
	IsFree                bool            `json:"isFree"`
	IncludesScreenSharing bool            `json:"includesScreenSharing"`
	IncludesTranslation   bool            `json:"includesTranslation"`
	IncludesRecording     bool            `json:"includesRecording"`
	IncludesTranscription bool            `json:"includesTranscription"`
}

// CatalogResponse каталог тарифов хоста
type CatalogResponse struct {
	HostID       int64          `json:"hostId"`
	Tiers        []TierResponse `json:"tiers"`
	ActiveCount  int            `json:"activeCount"`
	MaxActive    int            `json:"maxActive"`
	HostServices []string       `json:"hostServices"`
}

// FromDomainTier конвертирует доменный тариф в ответ
func FromDomainTier(t domain.PricingTier, freeCallDuration int) TierResponse {
	return TierResponse{
		DurationMinutes:       t.DurationMinutes,
		Price:                 t.Price.Round(domain.CurrencyPrecision),
		IsActive:              t.IsActive,
		IsCustom:              t.IsCustom,
		IsFree:                t.IsFree(freeCallDuration),
		IncludesScreenSharing: t.IncludesScreenSharing,
		IncludesTranslation:   t.IncludesTranslation,
		IncludesRecording:     t.IncludesRecording,
		IncludesTranscription: t.IncludesTranscription,
	}
}

// FromDomainTiers конвертирует список тарифов
func FromDomainTiers(tiers []domain.PricingTier, freeCallDuration int) []TierResponse {
	result := make([]TierResponse, 0, len(tiers))
	for _, t := range tiers {
		result = append(result, FromDomainTier(t, freeCallDuration))
	}
	return result
}

// AddOnNames конвертирует набор услуг в список строк
func AddOnNames(set domain.AddOnSet) []string {
	list := set.List()
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, string(a))
	}
	return names
}
