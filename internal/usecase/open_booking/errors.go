package open_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)
