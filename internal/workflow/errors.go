package workflow

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/charges"
)

var (
	// ErrMissingSelection возвращается, когда для перехода не хватает выбранных данных
	ErrMissingSelection = fmt.Errorf("%w: required selection is missing", domain.ErrValidation)

	// ErrDateUnavailable возвращается при выборе даты, на которую у хоста нет правил
	ErrDateUnavailable = fmt.Errorf("%w: date is not available", domain.ErrValidation)

	// ErrSlotUnavailable возвращается при выборе времени вне рассчитанных слотов
	ErrSlotUnavailable = fmt.Errorf("%w: time slot is not available", domain.ErrValidation)

	// ErrTierUnavailable возвращается при выборе неактивного или несуществующего тарифа
	ErrTierUnavailable = fmt.Errorf("%w: pricing tier is not available", domain.ErrValidation)

	// ErrAddOnNotOffered возвращается, когда хост не предлагает услугу
	ErrAddOnNotOffered = fmt.Errorf("%w: add-on is not offered by host", domain.ErrValidation)

	// ErrFreeCallsDisabled возвращается при выборе бесплатного тарифа, когда платформа его запрещает
	ErrFreeCallsDisabled = charges.ErrFreeCallsDisabled

	// ErrAddOnDisabled возвращается при выборе услуги, выключенной на платформе
	ErrAddOnDisabled = charges.ErrAddOnDisabled

	// ErrPaymentFailed возвращается, когда оплата не прошла; процесс остаётся на шаге оплаты
	ErrPaymentFailed = fmt.Errorf("%w: payment failed", domain.ErrExternalOperation)

	// ErrInvalidTransition возвращается при недопустимом переходе
	ErrInvalidTransition = fmt.Errorf("%w: workflow", domain.ErrInvalidTransition)

	// ErrClosed возвращается при обращении к закрытому процессу
	ErrClosed = fmt.Errorf("%w: workflow is closed", domain.ErrInvalidTransition)

	// ErrOperationInFlight возвращается, пока выполняется оплата
	ErrOperationInFlight = fmt.Errorf("%w: payment is being processed", domain.ErrOperationInFlight)
)
