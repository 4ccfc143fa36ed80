package get_booking

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetByReference(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
