package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrRulesUnavailable возвращается, когда не удалось прочитать правила хоста
	ErrRulesUnavailable = fmt.Errorf("%w: availability rules unavailable", domain.ErrExternalOperation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: availability: invalid input data", domain.ErrValidation)
)
