package completion

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// ErrPersistFailed возвращается, когда оплаченное бронирование не удалось сохранить
var ErrPersistFailed = fmt.Errorf("%w: failed to persist booking", domain.ErrExternalOperation)
