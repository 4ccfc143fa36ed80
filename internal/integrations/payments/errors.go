package payments

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrInvalidAmount возвращается при отрицательной сумме платежа
	ErrInvalidAmount = fmt.Errorf("%w: payments client: invalid amount", domain.ErrValidation)

	// ErrPaymentDeclined возвращается, когда провайдер отклонил платёж
	ErrPaymentDeclined = fmt.Errorf("%w: payment declined", domain.ErrExternalOperation)

	// ErrPaymentNotCompleted возвращается, когда платёж не завершён (требует действий клиента или в обработке)
	ErrPaymentNotCompleted = fmt.Errorf("%w: payment not completed", domain.ErrExternalOperation)

	// ErrProviderUnavailable возвращается при недоступности платёжного провайдера
	ErrProviderUnavailable = fmt.Errorf("%w: payment provider unavailable", domain.ErrExternalOperation)
)
