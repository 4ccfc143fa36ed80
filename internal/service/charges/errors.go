package charges

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrSettingsUnavailable возвращается, когда не удалось прочитать ставки и цены услуг
	ErrSettingsUnavailable = fmt.Errorf("%w: platform settings unavailable", domain.ErrExternalOperation)

	// ErrInvalidInput возвращается при некорректных входных данных расчёта
	ErrInvalidInput = fmt.Errorf("%w: charges: invalid input data", domain.ErrValidation)

	// ErrAddOnDisabled возвращается, когда выбранная услуга выключена на платформе
	ErrAddOnDisabled = fmt.Errorf("%w: add-on is disabled", domain.ErrConfigurationGated)

	// ErrFreeCallsDisabled возвращается, когда бесплатные консультации выключены на платформе
	ErrFreeCallsDisabled = fmt.Errorf("%w: free calls are disabled", domain.ErrConfigurationGated)
)
