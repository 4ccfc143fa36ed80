package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrRangeTooLarge возвращается, когда запрошенный период длиннее допустимого
	ErrRangeTooLarge = fmt.Errorf("%w: date range is too large", domain.ErrValidation)
)
