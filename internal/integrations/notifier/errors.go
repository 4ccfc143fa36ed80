package notifier

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = fmt.Errorf("%w: notifier client: internal error", domain.ErrExternalOperation)

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса уведомлений
	ErrInvalidResponse = fmt.Errorf("%w: notifier client: invalid response", domain.ErrExternalOperation)

	// ErrRejected возвращается, когда сервис уведомлений отклонил запрос
	ErrRejected = errors.New("notifier client: notification rejected")
)
