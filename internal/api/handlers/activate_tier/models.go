package activate_tier

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
)

// ActivateTierRequest HTTP request model
// Незаполненные поля сохраняют текущие значения тарифа
type ActivateTierRequest struct {
	Price                 *decimal.Decimal `json:"price,omitempty"`
	IncludesScreenSharing *bool            `json:"includesScreenSharing,omitempty"`
	IncludesTranslation   *bool            `json:"includesTranslation,omitempty"`
	IncludesRecording     *bool            `json:"includesRecording,omitempty"`
	IncludesTranscription *bool            `json:"includesTranscription,omitempty"`
	IsCustom              *bool            `json:"isCustom,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ActivateTierRequest) ToServiceRequest(durationMinutes int) *models.ActivateTierRequest {
	return &models.ActivateTierRequest{
		DurationMinutes:       durationMinutes,
		Price:                 r.Price,
		IncludesScreenSharing: r.IncludesScreenSharing,
		IncludesTranslation:   r.IncludesTranslation,
		IncludesRecording:     r.IncludesRecording,
		IncludesTranscription: r.IncludesTranscription,
		IsCustom:              r.IsCustom,
	}
}
