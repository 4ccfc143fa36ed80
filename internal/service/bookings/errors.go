package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidStatusChange возвращается при недопустимой смене статуса
	ErrInvalidStatusChange = fmt.Errorf("%w: booking status cannot be changed", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: bookings storage error", domain.ErrExternalOperation)
)
