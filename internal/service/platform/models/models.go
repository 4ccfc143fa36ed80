package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек платформы
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID             int64            `json:"userId"`
	AllowFreeCalls     *bool            `json:"allowFreeCalls,omitempty"`
	AllowScreenSharing *bool            `json:"allowScreenSharing,omitempty"`
	AllowTranslation   *bool            `json:"allowTranslation,omitempty"`
	AllowRecording     *bool            `json:"allowRecording,omitempty"`
	AllowTranscription *bool            `json:"allowTranscription,omitempty"`
	CommissionRate     *decimal.Decimal `json:"commissionRate,omitempty"`
	TaxRate            *decimal.Decimal `json:"taxRate,omitempty"`
	ScreenSharingPrice *decimal.Decimal `json:"screenSharingPrice,omitempty"`
	TranslationPrice   *decimal.Decimal `json:"translationPrice,omitempty"`
	RecordingPrice     *decimal.Decimal `json:"recordingPrice,omitempty"`
	TranscriptionPrice *decimal.Decimal `json:"transcriptionPrice,omitempty"`
}

// ApplyToSettings применяет обновления к настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.PlatformSettings) {
	if r.AllowFreeCalls != nil {
		s.AllowFreeCalls = *r.AllowFreeCalls
	}
	if r.AllowScreenSharing != nil {
		s.AllowScreenSharing = *r.AllowScreenSharing
	}
	if r.AllowTranslation != nil {
		s.AllowTranslation = *r.AllowTranslation
	}
	if r.AllowRecording != nil {
		s.AllowRecording = *r.AllowRecording
	}
	if r.AllowTranscription != nil {
		s.AllowTranscription = *r.AllowTranscription
	}
	if r.CommissionRate != nil {
		s.CommissionRate = *r.CommissionRate
	}
	if r.TaxRate != nil {
		s.TaxRate = *r.TaxRate
	}
	if r.ScreenSharingPrice != nil {
		s.AddOnPrices.ScreenSharing = *r.ScreenSharingPrice
	}
	if r.TranslationPrice != nil {
		s.AddOnPrices.Translation = *r.TranslationPrice
	}
	if r.RecordingPrice != nil {
		s.AddOnPrices.Recording = *r.RecordingPrice
	}
	if r.TranscriptionPrice != nil {
		s.AddOnPrices.Transcription = *r.TranscriptionPrice
	}
}

// AddOnResponse услуга и её настройки на платформе
type AddOnResponse struct {
	Name    string          `json:"name"`
	Allowed bool            `json:"allowed"`
	Price   decimal.Decimal `json:"price"`
}

// SettingsResponse ответ с настройками платформы
type SettingsResponse struct {
	AllowFreeCalls bool            `json:"allowFreeCalls"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	AddOns         []AddOnResponse `json:"addOns"`
	IsDefault      bool            `json:"isDefault"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s domain.PlatformSettings) *SettingsResponse {
	resp := &SettingsResponse{
		AllowFreeCalls: s.AllowFreeCalls,
		CommissionRate: s.CommissionRate,
		TaxRate:        s.TaxRate,
		AddOns:         make([]AddOnResponse, 0, len(domain.AllAddOns)),
		IsDefault:      s.UpdatedAt.IsZero(),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	for _, a := range domain.AllAddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			Name:    string(a),
			Allowed: s.AddOnAllowed(a),
			Price:   s.AddOnPrices.Price(a),
		})
	}
	return resp
}
