package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrTooManyActiveTiers возвращается при попытке активировать тариф сверх лимита
	ErrTooManyActiveTiers = fmt.Errorf("%w: at most %d pricing tiers can be active", domain.ErrCapacity, domain.MaxActiveTiers)

	// ErrFreeCallsDisabled возвращается при активации бесплатного тарифа, когда платформа его запрещает
	ErrFreeCallsDisabled = fmt.Errorf("%w: free calls are disabled", domain.ErrConfigurationGated)

	// ErrAddOnDisabled возвращается, когда услуга выключена на уровне платформы
	ErrAddOnDisabled = fmt.Errorf("%w: add-on is disabled", domain.ErrConfigurationGated)

	// ErrInvalidTier возвращается при некорректной длительности или цене тарифа
	ErrInvalidTier = fmt.Errorf("%w: invalid pricing tier", domain.ErrValidation)

	// ErrPriceRequired возвращается при активации нового тарифа без цены
	ErrPriceRequired = fmt.Errorf("%w: price is required for a new tier", domain.ErrValidation)

	// ErrPricingUnavailable возвращается, когда не удалось прочитать или записать тарифы
	ErrPricingUnavailable = fmt.Errorf("%w: pricing source unavailable", domain.ErrExternalOperation)

	// ErrAccessDenied возвращается, когда пользователь не является владельцем каталога
	ErrAccessDenied = errors.New("pricing: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: pricing: invalid input data", domain.ErrValidation)
)
