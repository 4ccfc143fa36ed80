package update_platform_settings

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/service/platform/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны
type UpdateSettingsRequest struct {
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

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:             userID,
		AllowFreeCalls:     r.AllowFreeCalls,
		AllowScreenSharing: r.AllowScreenSharing,
		AllowTranslation:   r.AllowTranslation,
		AllowRecording:     r.AllowRecording,
		AllowTranscription: r.AllowTranscription,
		CommissionRate:     r.CommissionRate,
		TaxRate:            r.TaxRate,
		ScreenSharingPrice: r.ScreenSharingPrice,
		TranslationPrice:   r.TranslationPrice,
		RecordingPrice:     r.RecordingPrice,
		TranscriptionPrice: r.TranscriptionPrice,
	}
}
